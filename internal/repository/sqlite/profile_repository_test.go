package sqlite_test

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/senya/senya/internal/models"
	"github.com/senya/senya/internal/repository"
	"github.com/senya/senya/internal/repository/sqlite"
	"github.com/senya/senya/internal/testutil"
)

type ProfileRepositorySuite struct {
	suite.Suite
	db     *sql.DB
	repo   repository.ProfileRepository
	userID int64
}

func (s *ProfileRepositorySuite) SetupTest() {
	s.db = testutil.NewTestDB(s.T())
	s.repo = sqlite.NewProfileRepository(s.db)
	s.userID = seedAccount(s.T(), s.db, "bruno", "bruno@example.com", 2)
}

func (s *ProfileRepositorySuite) TearDownTest() {
	testutil.MustClose(s.T(), s.db)
}

func (s *ProfileRepositorySuite) setState(hearts, rubies, streak int) {
	_, err := s.db.Exec(`UPDATE user_profiles SET hearts = ?, rubies = ?, streak = ? WHERE user_id = ?`,
		hearts, rubies, streak, s.userID)
	s.Require().NoError(err)
}

func (s *ProfileRepositorySuite) setLastActivity(t time.Time) {
	_, err := s.db.Exec(`UPDATE user_profiles SET last_activity_at = ? WHERE user_id = ?`, t, s.userID)
	s.Require().NoError(err)
}

func (s *ProfileRepositorySuite) TestSpendHeart_FloorsAtZero() {
	ctx := context.Background()

	profile, err := s.repo.SpendHeart(ctx, s.userID)
	s.Require().NoError(err)
	s.Assert().Equal(1, profile.Hearts)

	profile, err = s.repo.SpendHeart(ctx, s.userID)
	s.Require().NoError(err)
	s.Assert().Equal(0, profile.Hearts)

	_, err = s.repo.SpendHeart(ctx, s.userID)
	s.Assert().ErrorIs(err, repository.ErrNoHearts)

	profile, err = s.repo.Get(ctx, s.userID)
	s.Require().NoError(err)
	s.Assert().Equal(0, profile.Hearts)
}

func (s *ProfileRepositorySuite) TestAddRubies() {
	ctx := context.Background()

	s.Require().NoError(s.repo.AddRubies(ctx, s.userID, 25))
	profile, err := s.repo.Get(ctx, s.userID)
	s.Require().NoError(err)
	s.Assert().Equal(25, profile.Rubies)
}

func (s *ProfileRepositorySuite) TestPurchaseHearts_CapsAtCeiling() {
	ctx := context.Background()
	s.setState(4, 100, 0)

	pkg := models.HeartPackage{ID: 1, Name: "Triple Heart", HeartsAmount: 3, RubyCost: 25}
	profile, err := s.repo.PurchaseHearts(ctx, s.userID, pkg, 5)
	s.Require().NoError(err)

	// Overflow past the cap is forfeited.
	s.Assert().Equal(5, profile.Hearts)
	s.Assert().Equal(75, profile.Rubies)
}

func (s *ProfileRepositorySuite) TestPurchaseHearts_InsufficientRubies() {
	ctx := context.Background()
	s.setState(0, 10, 0)

	pkg := models.HeartPackage{ID: 1, Name: "Triple Heart", HeartsAmount: 3, RubyCost: 25}
	_, err := s.repo.PurchaseHearts(ctx, s.userID, pkg, 5)
	s.Assert().ErrorIs(err, repository.ErrInsufficientRubies)

	// Nothing changed.
	profile, err := s.repo.Get(ctx, s.userID)
	s.Require().NoError(err)
	s.Assert().Equal(0, profile.Hearts)
	s.Assert().Equal(10, profile.Rubies)
}

func (s *ProfileRepositorySuite) TestTouchStreak_SameDayNoOp() {
	ctx := context.Background()
	day := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	s.setState(2, 0, 3)
	s.setLastActivity(day)

	streak, err := s.repo.TouchStreak(ctx, s.userID, day.Add(8*time.Hour))
	s.Require().NoError(err)
	s.Assert().Equal(3, streak)
}

func (s *ProfileRepositorySuite) TestTouchStreak_NextDayIncrements() {
	ctx := context.Background()
	day := time.Date(2026, 3, 10, 23, 0, 0, 0, time.UTC)
	s.setState(2, 0, 3)
	s.setLastActivity(day)

	streak, err := s.repo.TouchStreak(ctx, s.userID, day.Add(2*time.Hour)) // crosses midnight
	s.Require().NoError(err)
	s.Assert().Equal(4, streak)
}

func (s *ProfileRepositorySuite) TestTouchStreak_GapResets() {
	ctx := context.Background()
	day := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	s.setState(2, 0, 7)
	s.setLastActivity(day)

	streak, err := s.repo.TouchStreak(ctx, s.userID, day.AddDate(0, 0, 3))
	s.Require().NoError(err)
	s.Assert().Equal(1, streak)
}

func (s *ProfileRepositorySuite) TestRegenerateHearts() {
	ctx := context.Background()
	other := seedAccount(s.T(), s.db, "clara", "clara@example.com", 5)

	topped, err := s.repo.RegenerateHearts(ctx, 5)
	s.Require().NoError(err)
	s.Assert().Equal(int64(1), topped)

	profile, err := s.repo.Get(ctx, s.userID)
	s.Require().NoError(err)
	s.Assert().Equal(3, profile.Hearts)

	// A profile at the cap stays put.
	full, err := s.repo.Get(ctx, other)
	s.Require().NoError(err)
	s.Assert().Equal(5, full.Hearts)
}

func (s *ProfileRepositorySuite) TestCertificateAndProfileURL() {
	ctx := context.Background()

	s.Require().NoError(s.repo.SetCertificate(ctx, s.userID, true))
	s.Require().NoError(s.repo.UpdateProfileURL(ctx, s.userID, "https://cdn.example.com/bruno.png"))

	profile, err := s.repo.Get(ctx, s.userID)
	s.Require().NoError(err)
	s.Assert().True(profile.Certificate)
	s.Assert().Equal("https://cdn.example.com/bruno.png", profile.ProfileURL)
}

func TestProfileRepositorySuite(t *testing.T) {
	suite.Run(t, new(ProfileRepositorySuite))
}
