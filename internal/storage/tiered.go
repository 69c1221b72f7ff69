// internal/storage/tiered.go
package storage

import (
	"go.uber.org/zap"

	"chatfit/internal/models"
)

// Tiered is the two-tier repository: writes target the remote tier and
// always mirror to the local tier; reads prefer remote and fall back to
// local, refreshing the local cache on a successful remote read. The
// tiers are never merged — when both hold a record, remote wins. A nil
// remote store means a local-only (unsynced) session.
type Tiered struct {
	remote Store // may be nil
	local  Store
	log    *zap.Logger
}

func NewTiered(remote, local Store, log *zap.Logger) *Tiered {
	return &Tiered{remote: remote, local: local, log: log}
}

func (t *Tiered) Close() error {
	if t.remote != nil {
		if err := t.remote.Close(); err != nil {
			t.log.Warn("failed to close remote store", zap.Error(err))
		}
	}
	return t.local.Close()
}

// write attempts the remote tier, then mirrors locally regardless of
// the remote outcome. A remote failure degrades to local-only
// durability, it never fails the call.
func (t *Tiered) write(what string, remote, local func(Store) error) error {
	if t.remote != nil {
		if err := remote(t.remote); err != nil {
			t.log.Warn("remote write failed, keeping local copy only",
				zap.String("record", what), zap.Error(err))
		}
	}
	return local(t.local)
}

// read tries the remote tier first; a hit refreshes the local cache.
// A healthy remote answer is authoritative even when it is a miss
// (remote wins over a diverged local copy); only a remote failure
// falls through to the local tier.
func (t *Tiered) read(what string, remote func(Store) (bool, error), local func(Store) error, refresh func(Store) error) (Tier, error) {
	if t.remote != nil {
		found, err := remote(t.remote)
		if err == nil {
			if found && refresh != nil {
				if err := refresh(t.local); err != nil {
					t.log.Warn("failed to refresh local cache",
						zap.String("record", what), zap.Error(err))
				}
			}
			return TierRemote, nil
		}
		t.log.Warn("remote read failed, falling back to local store",
			zap.String("record", what), zap.Error(err))
	}
	return TierLocal, local(t.local)
}

func (t *Tiered) SaveProfile(profile *models.UserProfile) error {
	return t.write("profile",
		func(s Store) error { return s.SaveProfile(profile) },
		func(s Store) error { return s.SaveProfile(profile) })
}

func (t *Tiered) GetProfile(id string) (*models.UserProfile, Tier, error) {
	var profile *models.UserProfile
	tier, err := t.read("profile",
		func(s Store) (bool, error) {
			p, err := s.GetProfile(id)
			profile = p
			return p != nil, err
		},
		func(s Store) error {
			p, err := s.GetProfile(id)
			profile = p
			return err
		},
		func(s Store) error { return s.SaveProfile(profile) })
	return profile, tier, err
}

func (t *Tiered) SaveNutritionLog(userID string, log *models.NutritionLog) error {
	return t.write("nutrition log",
		func(s Store) error { return s.SaveNutritionLog(userID, log) },
		func(s Store) error { return s.SaveNutritionLog(userID, log) })
}

func (t *Tiered) GetNutritionLog(userID, date string) (*models.NutritionLog, Tier, error) {
	var log *models.NutritionLog
	tier, err := t.read("nutrition log",
		func(s Store) (bool, error) {
			l, err := s.GetNutritionLog(userID, date)
			log = l
			return l != nil, err
		},
		func(s Store) error {
			l, err := s.GetNutritionLog(userID, date)
			log = l
			return err
		},
		func(s Store) error { return s.SaveNutritionLog(userID, log) })
	return log, tier, err
}

func (t *Tiered) SaveWorkoutLog(userID string, log *models.WorkoutLog) error {
	return t.write("workout log",
		func(s Store) error { return s.SaveWorkoutLog(userID, log) },
		func(s Store) error { return s.SaveWorkoutLog(userID, log) })
}

func (t *Tiered) GetWorkoutLog(userID, date string) (*models.WorkoutLog, Tier, error) {
	var log *models.WorkoutLog
	tier, err := t.read("workout log",
		func(s Store) (bool, error) {
			l, err := s.GetWorkoutLog(userID, date)
			log = l
			return l != nil, err
		},
		func(s Store) error {
			l, err := s.GetWorkoutLog(userID, date)
			log = l
			return err
		},
		func(s Store) error { return s.SaveWorkoutLog(userID, log) })
	return log, tier, err
}

func (t *Tiered) ListWorkoutLogs(userID string) ([]*models.WorkoutLog, Tier, error) {
	if t.remote != nil {
		logs, err := t.remote.ListWorkoutLogs(userID)
		if err == nil {
			return logs, TierRemote, nil
		}
		t.log.Warn("remote list failed, falling back to local store", zap.Error(err))
	}
	logs, err := t.local.ListWorkoutLogs(userID)
	return logs, TierLocal, err
}
