package services

import (
	"errors"

	"liga-api/packages/core/models"
	"liga-api/packages/core/utils"

	"gorm.io/gorm"
)

type RatingService struct {
	stats       StatsProvider
	predictions PredictionProvider
}

func NewRatingService(stats StatsProvider, predictions PredictionProvider) *RatingService {
	return &RatingService{
		stats:       stats,
		predictions: predictions,
	}
}

// Aggregate recomputes ratings, trends and honors for a match from whatever
// votes exist. It runs inside the caller's transaction (closing flips the
// status in the same transaction, so a failure here leaves the match
// untouched). It is deterministic and overwrites all prior derived values,
// which makes re-running it safe.
func (s *RatingService) Aggregate(tx *gorm.DB, match *models.Match) error {
	var roster []models.RosterEntry
	if err := tx.Where("match_id = ?", match.ID).Order("player_id ASC").Find(&roster).Error; err != nil {
		return err
	}

	var votes []models.Vote
	if err := tx.Where("match_id = ?", match.ID).Find(&votes).Error; err != nil {
		return err
	}

	votesByTarget := make(map[uint][]models.Vote)
	for _, v := range votes {
		votesByTarget[v.TargetID] = append(votesByTarget[v.TargetID], v)
	}

	for i := range roster {
		entry := &roster[i]
		received := votesByTarget[entry.PlayerID]

		overalls := make([]int, 0, len(received))
		paces := make([]int, 0, len(received))
		shots := make([]int, 0, len(received))
		passes := make([]int, 0, len(received))
		phys := make([]int, 0, len(received))
		for _, v := range received {
			overalls = append(overalls, v.Overall)
			paces = append(paces, v.Pace)
			shots = append(shots, v.Shooting)
			passes = append(passes, v.Passing)
			phys = append(phys, v.Physical)
		}

		rating := utils.MeanOverall(overalls)
		entry.MatchRating = &rating
		entry.MatchPace = subStatMean(paces)
		entry.MatchShot = subStatMean(shots)
		entry.MatchPass = subStatMean(passes)
		entry.MatchPhys = subStatMean(phys)

		trend, err := s.trendFor(match.LeagueID, entry.PlayerID, rating)
		if err != nil {
			return err
		}
		entry.Trend = trend

		updates := map[string]interface{}{
			"match_rating": entry.MatchRating,
			"match_pace":   entry.MatchPace,
			"match_shot":   entry.MatchShot,
			"match_pass":   entry.MatchPass,
			"match_phys":   entry.MatchPhys,
			"trend":        entry.Trend,
		}
		if err := tx.Model(&models.RosterEntry{}).Where("id = ?", entry.ID).Updates(updates).Error; err != nil {
			return err
		}
	}

	return s.assignHonors(tx, match, roster)
}

// trendFor back-solves the pre-match historical average from the league's
// post-match aggregate. A player without league statistics just gets no
// trend; provider infrastructure errors abort the aggregation.
func (s *RatingService) trendFor(leagueID, playerID uint, rating float64) (*float64, error) {
	stats, err := s.stats.PlayerStats(leagueID, playerID)
	if err != nil {
		if errors.Is(err, ErrPlayerNotFound) {
			return nil, nil
		}
		return nil, err
	}
	trend := utils.Trend(stats.AvgRating, stats.MatchesPlayed, rating)
	return &trend, nil
}

// assignHonors rewrites the computed honors for the match. FIGURE rows are
// preserved: they belong to the duel-resolution process, not to this
// aggregation.
func (s *RatingService) assignHonors(tx *gorm.DB, match *models.Match, roster []models.RosterEntry) error {
	// Hard delete so rewriting does not trip the unique index on re-insert.
	if err := tx.Unscoped().
		Where("match_id = ? AND honor_type <> ?", match.ID, models.HonorFigure).
		Delete(&models.Honor{}).Error; err != nil {
		return err
	}

	var honors []models.Honor

	// Performance honors cover confirmed participants only, and only when
	// the ratings actually spread: with zero votes everyone sits at the
	// neutral baseline and no MVP/TRONCO is awarded.
	maxRating, minRating := 0.0, 0.0
	first := true
	for _, e := range roster {
		if !e.HasConfirmed || e.MatchRating == nil {
			continue
		}
		r := *e.MatchRating
		if first {
			maxRating, minRating = r, r
			first = false
			continue
		}
		if r > maxRating {
			maxRating = r
		}
		if r < minRating {
			minRating = r
		}
	}

	var mvpID *uint
	if !first && maxRating > minRating {
		for _, e := range roster {
			if !e.HasConfirmed || e.MatchRating == nil {
				continue
			}
			switch *e.MatchRating {
			case maxRating:
				honors = append(honors, models.Honor{MatchID: match.ID, PlayerID: e.PlayerID, HonorType: models.HonorMVP})
				// Tied MVPs all get the honor; the denormalized pointer
				// takes the lowest player id so it stays deterministic.
				if mvpID == nil || e.PlayerID < *mvpID {
					id := e.PlayerID
					mvpID = &id
				}
			case minRating:
				honors = append(honors, models.Honor{MatchID: match.ID, PlayerID: e.PlayerID, HonorType: models.HonorTronco})
			}
		}
	}

	for _, e := range roster {
		if !e.HasConfirmed {
			honors = append(honors, models.Honor{MatchID: match.ID, PlayerID: e.PlayerID, HonorType: models.HonorFantasma})
		}
	}

	oracle, found, err := s.predictions.BestPredictor(match.ID)
	if err != nil {
		return err
	}
	if found {
		honors = append(honors, models.Honor{MatchID: match.ID, PlayerID: oracle, HonorType: models.HonorOracle})
	}

	if len(honors) > 0 {
		if err := tx.Create(&honors).Error; err != nil {
			return err
		}
	}

	return tx.Model(&models.Match{}).Where("id = ?", match.ID).Update("mvp_id", mvpID).Error
}

func subStatMean(values []int) *float64 {
	mean, ok := utils.MeanSubStat(values)
	if !ok {
		return nil
	}
	return &mean
}
