// Package achievements stores the achievement catalog ("achievements") and
// the awards ("user_achievements", keyed by user id + "/" + achievement id).
package achievements

import (
	"context"
	"sort"

	"github.com/dmitrijs2005/yogatrack/internal/recordstore"
	"github.com/dmitrijs2005/yogatrack/internal/server/models"
)

type StoreRepository struct {
	catalog *recordstore.Collection[models.Achievement]
	awards  *recordstore.Collection[models.UserAchievement]
}

func NewStoreRepository(s *recordstore.Store) *StoreRepository {
	return &StoreRepository{
		catalog: recordstore.NewCollection[models.Achievement](s, recordstore.Achievements),
		awards:  recordstore.NewCollection[models.UserAchievement](s, recordstore.UserAchievements),
	}
}

func (r *StoreRepository) Catalog(ctx context.Context) ([]models.Achievement, error) {
	var out []models.Achievement
	err := r.catalog.Update(ctx, func(m map[string]models.Achievement) error {
		out = out[:0]
		seeded := len(m) == 0
		if seeded {
			for _, a := range models.DefaultAchievements() {
				m[a.ID] = a
			}
		}
		for _, a := range m {
			out = append(out, a)
		}
		if !seeded {
			return recordstore.ErrSkip
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *StoreRepository) Earned(ctx context.Context, userID string) ([]models.UserAchievement, error) {
	m, err := r.awards.Load(ctx)
	if err != nil {
		return nil, err
	}
	var out []models.UserAchievement
	for _, ua := range m {
		if ua.UserID == userID {
			out = append(out, ua)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].EarnedAt.Equal(out[j].EarnedAt) {
			return out[i].EarnedAt.Before(out[j].EarnedAt)
		}
		return out[i].AchievementID < out[j].AchievementID
	})
	return out, nil
}

func (r *StoreRepository) Award(ctx context.Context, awards []models.UserAchievement) ([]string, error) {
	if len(awards) == 0 {
		return nil, nil
	}
	var added []string
	err := r.awards.Update(ctx, func(m map[string]models.UserAchievement) error {
		added = added[:0]
		for _, ua := range awards {
			if _, ok := m[ua.Key()]; ok {
				continue
			}
			m[ua.Key()] = ua
			added = append(added, ua.AchievementID)
		}
		if len(added) == 0 {
			return recordstore.ErrSkip
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return added, nil
}

func (r *StoreRepository) Revoke(ctx context.Context, userID string, achievementIDs []string) error {
	if len(achievementIDs) == 0 {
		return nil
	}
	return r.awards.Update(ctx, func(m map[string]models.UserAchievement) error {
		removed := 0
		for _, id := range achievementIDs {
			key := models.UserAchievement{UserID: userID, AchievementID: id}.Key()
			if _, ok := m[key]; ok {
				delete(m, key)
				removed++
			}
		}
		if removed == 0 {
			return recordstore.ErrSkip
		}
		return nil
	})
}
