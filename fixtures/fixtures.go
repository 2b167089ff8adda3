package fixtures

import (
	"fmt"
	"log"
	"math/rand"
	"time"

	"liga-api/packages/core/models"

	"github.com/gosimple/slug"
	"gorm.io/gorm"
)

type Fixtures struct {
	db *gorm.DB
}

func NewFixtures(db *gorm.DB) *Fixtures {
	return &Fixtures{db: db}
}

var memberNames = []string{
	"Marco", "Julen", "Dani", "Sergi", "Alvaro",
	"Pablo", "Iker", "Nico", "Hugo", "Leo",
}

// GenerateTestData creates a demo league with 10 members, a season of played
// matches with full ballots, and a couple of upcoming fixtures.
func (f *Fixtures) GenerateTestData() error {
	log.Println("Starting fixtures generation...")

	league, err := f.generateLeague()
	if err != nil {
		return fmt.Errorf("failed to generate league: %w", err)
	}

	members, err := f.generateMembers(league)
	if err != nil {
		return fmt.Errorf("failed to generate members: %w", err)
	}

	played, err := f.generatePlayedMatches(league, members)
	if err != nil {
		return fmt.Errorf("failed to generate played matches: %w", err)
	}

	if err := f.generateUpcomingMatches(league, members); err != nil {
		return fmt.Errorf("failed to generate upcoming matches: %w", err)
	}

	log.Println("Fixtures generated successfully!")
	log.Printf("Created league %q with %d members and %d played matches", league.Name, len(members), played)
	return nil
}

// CleanTestData removes everything the generator created.
func (f *Fixtures) CleanTestData() error {
	log.Println("Cleaning fixture data...")

	for _, table := range []string{"predictions", "duels", "honors", "votes", "roster_entries", "matches", "memberships", "leagues"} {
		if err := f.db.Exec("DELETE FROM " + table).Error; err != nil {
			return err
		}
	}

	log.Println("Fixture data cleaned")
	return nil
}

func (f *Fixtures) generateLeague() (*models.League, error) {
	league := models.League{
		Name: "Lunes Nocturno FC",
		Slug: slug.Make("Lunes Nocturno FC"),
	}
	if err := f.db.Create(&league).Error; err != nil {
		return nil, err
	}
	return &league, nil
}

func (f *Fixtures) generateMembers(league *models.League) ([]models.Membership, error) {
	members := make([]models.Membership, 0, len(memberNames))

	for i, name := range memberNames {
		role := models.RoleMember
		if i == 0 {
			role = models.RoleOwner
		} else if i == 1 {
			role = models.RoleAdmin
		}

		member := models.Membership{
			LeagueID:    league.ID,
			PlayerID:    uint(i + 1),
			DisplayName: name,
			Role:        role,
			AvgRating:   5.0 + rand.Float64()*4.0,
		}
		if err := f.db.Create(&member).Error; err != nil {
			return nil, err
		}
		members = append(members, member)
	}

	return members, nil
}

func (f *Fixtures) generatePlayedMatches(league *models.League, members []models.Membership) (int, error) {
	const matchCount = 8

	for week := 0; week < matchCount; week++ {
		kickoff := time.Now().AddDate(0, 0, -7*(matchCount-week)).Truncate(time.Hour)

		match := models.Match{
			LeagueID:       league.ID,
			Location:       "Polideportivo Norte",
			DateTime:       kickoff,
			PricePerPlayer: 4.5,
			Status:         models.StatusFinished,
		}
		if err := f.db.Create(&match).Error; err != nil {
			return 0, err
		}

		roster := make([]models.RosterEntry, 0, len(members))
		for i, member := range members {
			team := models.TeamA
			if i%2 == 1 {
				team = models.TeamB
			}
			entry := models.RosterEntry{
				MatchID:      match.ID,
				PlayerID:     member.PlayerID,
				Team:         team,
				HasConfirmed: rand.Intn(10) > 1, // the odd no-show
			}
			if err := f.db.Create(&entry).Error; err != nil {
				return 0, err
			}
			roster = append(roster, entry)
		}

		scoreA, scoreB := rand.Intn(8), rand.Intn(8)
		if err := f.db.Model(&match).Updates(map[string]interface{}{"score_a": scoreA, "score_b": scoreB}).Error; err != nil {
			return 0, err
		}

		if err := f.generateBallots(match.ID, roster); err != nil {
			return 0, err
		}

		if err := f.generatePredictions(match.ID, members); err != nil {
			return 0, err
		}
	}

	return matchCount, nil
}

func (f *Fixtures) generateBallots(matchID uint, roster []models.RosterEntry) error {
	comments := []string{
		"", "", "Golazo por la escuadra", "Se durmio en defensa", "",
		"Paradon en el ultimo minuto", "", "Corrio como nunca", "",
	}

	for _, voter := range roster {
		if !voter.HasConfirmed {
			continue
		}
		for _, target := range roster {
			vote := models.Vote{
				MatchID:  matchID,
				VoterID:  voter.PlayerID,
				TargetID: target.PlayerID,
				Overall:  1 + rand.Intn(10),
				Comment:  comments[rand.Intn(len(comments))],
			}
			if voter.PlayerID != target.PlayerID {
				vote.Pace = rand.Intn(11)
				vote.Shooting = rand.Intn(11)
				vote.Passing = rand.Intn(11)
				vote.Physical = rand.Intn(11)
			}
			if err := f.db.Create(&vote).Error; err != nil {
				return err
			}
		}
	}
	return nil
}

func (f *Fixtures) generatePredictions(matchID uint, members []models.Membership) error {
	for _, member := range members {
		prediction := models.Prediction{
			MatchID:  matchID,
			PlayerID: member.PlayerID,
			Points:   rand.Intn(15),
		}
		if err := f.db.Create(&prediction).Error; err != nil {
			return err
		}
	}
	return nil
}

func (f *Fixtures) generateUpcomingMatches(league *models.League, members []models.Membership) error {
	for week := 1; week <= 2; week++ {
		match := models.Match{
			LeagueID:       league.ID,
			Location:       "Polideportivo Norte",
			DateTime:       time.Now().AddDate(0, 0, 7*week).Truncate(time.Hour),
			PricePerPlayer: 4.5,
			Status:         models.StatusOpen,
		}
		if err := f.db.Create(&match).Error; err != nil {
			return err
		}

		for i, member := range members {
			team := models.TeamA
			if i%2 == 1 {
				team = models.TeamB
			}
			entry := models.RosterEntry{
				MatchID:  match.ID,
				PlayerID: member.PlayerID,
				Team:     team,
			}
			if err := f.db.Create(&entry).Error; err != nil {
				return err
			}
		}
	}
	return nil
}
