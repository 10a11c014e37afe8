package api

import (
	"os"
	"regexp"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// The descriptor is written by hand; the .proto must describe the same
// service.
func TestServiceDescMatchesProto(t *testing.T) {
	src, err := os.ReadFile("proto/yogatrack/v1/yogatrack.proto")
	require.NoError(t, err)

	pkg := regexp.MustCompile(`(?m)^package (\S+);`).FindSubmatch(src)
	svc := regexp.MustCompile(`(?m)^service (\w+) \{`).FindSubmatch(src)
	require.NotNil(t, pkg)
	require.NotNil(t, svc)
	assert.Equal(t, ServiceName, string(pkg[1])+"."+string(svc[1]))

	var inProto []string
	for _, m := range regexp.MustCompile(`(?m)^\s*rpc (\w+)\(`).FindAllSubmatch(src, -1) {
		inProto = append(inProto, string(m[1]))
	}
	var inDesc []string
	for _, m := range ServiceDesc.Methods {
		inDesc = append(inDesc, m.MethodName)
	}
	sort.Strings(inProto)
	sort.Strings(inDesc)
	assert.Equal(t, inDesc, inProto)
}
