package config

import (
	"flag"
	"io"

	"github.com/dmitrijs2005/yogatrack/internal/flagx"
)

var serverFlags = []string{
	"-a", "-k", "-f", "-d", "-s", "-x", "-m", "-i",
	"-u", "-p", "-b", "-g", "-e", "-o",
	"-r", "-w", "-q", "-l", "-j",
}

// parseFlags overlays the short command-line flags onto config.
//
//	-a string   gRPC bind address (e.g. ":50051")
//	-k string   storage backend: memory, file, sqlite, postgres, s3, redis
//	-f string   data directory (file backend, sqlite database file)
//	-d string   PostgreSQL DSN
//	-s string   password pepper
//	-x string   hex AES key sealing stored documents
//	-m string   admin token
//	-i duration session sweep interval (0 disables the sweeper)
//	-u/-p/-b/-g/-e/-o  S3 user, password, bucket, region, endpoint, key prefix
//	-r/-w/-q    redis address, password, key prefix
//	-l string   log level
//	-j string   log format: text or json
//
// Arguments not in the list above are ignored so that other flag sets can
// share os.Args.
func parseFlags(config *Config, args []string) error {
	args = flagx.FilterArgs(args, serverFlags)

	fs := flag.NewFlagSet("server", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&config.EndpointAddrGRPC, "a", config.EndpointAddrGRPC, "address and port to run server")
	fs.StringVar(&config.StorageBackend, "k", config.StorageBackend, "storage backend")
	fs.StringVar(&config.DataDir, "f", config.DataDir, "data directory")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	fs.StringVar(&config.SecretKey, "s", config.SecretKey, "password pepper")
	fs.StringVar(&config.EncryptionKey, "x", config.EncryptionKey, "hex encryption key")
	fs.StringVar(&config.AdminToken, "m", config.AdminToken, "admin token")
	fs.DurationVar(&config.SessionSweepInterval, "i", config.SessionSweepInterval, "session sweep interval")

	fs.StringVar(&config.S3RootUser, "u", config.S3RootUser, "S3 root user")
	fs.StringVar(&config.S3RootPassword, "p", config.S3RootPassword, "S3 root password")
	fs.StringVar(&config.S3Bucket, "b", config.S3Bucket, "S3 bucket")
	fs.StringVar(&config.S3Region, "g", config.S3Region, "S3 region")
	fs.StringVar(&config.S3BaseEndpoint, "e", config.S3BaseEndpoint, "S3 base endpoint")
	fs.StringVar(&config.S3Prefix, "o", config.S3Prefix, "S3 key prefix")

	fs.StringVar(&config.RedisAddr, "r", config.RedisAddr, "redis address")
	fs.StringVar(&config.RedisPassword, "w", config.RedisPassword, "redis password")
	fs.StringVar(&config.RedisKeyPrefix, "q", config.RedisKeyPrefix, "redis key prefix")

	fs.StringVar(&config.LogLevel, "l", config.LogLevel, "log level")
	fs.StringVar(&config.LogFormat, "j", config.LogFormat, "log format")

	return fs.Parse(args)
}
