package services

import (
	"context"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"github.com/GORLEABHILASH/booklovers/internal/clients/redis"
	"github.com/GORLEABHILASH/booklovers/internal/data/graph"
	"github.com/GORLEABHILASH/booklovers/internal/domain/reading"
	"github.com/GORLEABHILASH/booklovers/internal/observability"
	apperr "github.com/GORLEABHILASH/booklovers/internal/pkg/errors"
	"github.com/GORLEABHILASH/booklovers/internal/platform/logger"
)

const profileOptionsLockKey = "seed:profile-options"

// ProfileService covers the user's profile, reading preferences and social
// data. Profile reads and every write return errors; the other reads degrade
// to empty results.
type ProfileService interface {
	Profile(ctx context.Context, userID string) (reading.Profile, error)
	UpdateProfile(ctx context.Context, userID string, u reading.ProfileUpdate) (reading.Profile, error)
	Preferences(ctx context.Context, userID string) reading.Preferences
	UpdatePreferences(ctx context.Context, userID string, p reading.Preferences) (reading.Preferences, error)
	Social(ctx context.Context, userID string) reading.SocialData

	// ProfileOptions seeds the default professions and hobbies the first time
	// either list is empty.
	ProfileOptions(ctx context.Context) reading.ProfileOptions
	ReadingOptions(ctx context.Context) reading.ReadingOptions
	Locations(ctx context.Context) reading.Locations

	AvailableClubs(ctx context.Context, userID string) []reading.BookClub
	JoinClub(ctx context.Context, userID, clubID string) (reading.ClubMembership, error)
	LeaveClub(ctx context.Context, userID, clubID string) error
}

type profileService struct {
	log      *logger.Logger
	profiles graph.ProfileRepo
	clubs    graph.ClubRepo
	locker   redis.Locker
	lockTTL  time.Duration
	now      func() time.Time
}

func NewProfileService(
	log *logger.Logger,
	profiles graph.ProfileRepo,
	clubs graph.ClubRepo,
	locker redis.Locker,
	lockTTL time.Duration,
	now func() time.Time,
) ProfileService {
	if now == nil {
		now = time.Now
	}
	return &profileService{
		log:      log.With("service", "ProfileService"),
		profiles: profiles,
		clubs:    clubs,
		locker:   locker,
		lockTTL:  lockTTL,
		now:      now,
	}
}

func (s *profileService) Profile(ctx context.Context, userID string) (reading.Profile, error) {
	out, err := s.profiles.Get(ctx, userID)
	if err != nil {
		if !apperr.IsDomain(err) {
			s.log.Error("Profile lookup failed", "user_id", userID, "error", err)
		}
		return reading.Profile{}, err
	}
	return out, nil
}

func (s *profileService) UpdateProfile(ctx context.Context, userID string, u reading.ProfileUpdate) (p reading.Profile, err error) {
	ctx, span := observability.StartSpan(ctx, "ProfileService.UpdateProfile", attribute.String("user.id", userID))
	defer func() { observability.EndSpan(span, err) }()

	if err := u.Validate(); err != nil {
		return reading.Profile{}, err
	}
	if err := s.profiles.Update(ctx, userID, u); err != nil {
		s.log.Error("Failed to update profile", "user_id", userID, "error", err)
		return reading.Profile{}, err
	}
	return s.Profile(ctx, userID)
}

func (s *profileService) Preferences(ctx context.Context, userID string) reading.Preferences {
	out, err := s.profiles.Preferences(ctx, userID)
	if err != nil {
		s.log.Warn("Preferences lookup failed", "user_id", userID, "error", err)
		return reading.EmptyPreferences()
	}
	return out
}

func (s *profileService) UpdatePreferences(ctx context.Context, userID string, p reading.Preferences) (reading.Preferences, error) {
	p = p.Normalize()
	if err := s.profiles.ReplacePreferences(ctx, userID, p); err != nil {
		s.log.Error("Failed to update preferences", "user_id", userID, "error", err)
		return reading.EmptyPreferences(), err
	}
	return p, nil
}

func (s *profileService) Social(ctx context.Context, userID string) reading.SocialData {
	out, err := s.profiles.Social(ctx, userID)
	if err != nil {
		s.log.Warn("Social data lookup failed", "user_id", userID, "error", err)
		return reading.EmptySocialData()
	}
	return out
}

func (s *profileService) ProfileOptions(ctx context.Context) reading.ProfileOptions {
	empty := reading.ProfileOptions{Professions: []string{}, Hobbies: []string{}}
	out, err := s.profiles.ProfileOptions(ctx)
	if err != nil {
		s.log.Warn("Profile options lookup failed", "error", err)
		return empty
	}
	if len(out.Professions) > 0 && len(out.Hobbies) > 0 {
		return out
	}

	var professions, hobbies []string
	if len(out.Professions) == 0 {
		professions = reading.DefaultProfessions
	}
	if len(out.Hobbies) == 0 {
		hobbies = reading.DefaultHobbies
	}
	err = withLock(ctx, s.locker, profileOptionsLockKey, s.lockTTL, func() error {
		return s.profiles.SeedProfileOptions(ctx, professions, hobbies)
	})
	if err != nil {
		s.log.Warn("Seeding profile options failed", "error", err)
		return empty
	}
	if professions != nil {
		out.Professions = append([]string{}, professions...)
	}
	if hobbies != nil {
		out.Hobbies = append([]string{}, hobbies...)
	}
	return out
}

func (s *profileService) ReadingOptions(ctx context.Context) reading.ReadingOptions {
	out, err := s.profiles.ReadingOptions(ctx)
	if err != nil {
		s.log.Warn("Reading options lookup failed", "error", err)
		return reading.ReadingOptions{Genres: []string{}, Authors: []string{}, Themes: []string{}}
	}
	return out
}

func (s *profileService) Locations(ctx context.Context) reading.Locations {
	out, err := s.profiles.Locations(ctx)
	if err != nil {
		s.log.Warn("Locations lookup failed", "error", err)
		return reading.EmptyLocations()
	}
	return out
}

func (s *profileService) AvailableClubs(ctx context.Context, userID string) []reading.BookClub {
	out, err := s.clubs.Available(ctx, userID)
	if err != nil {
		s.log.Warn("Book club lookup failed", "user_id", userID, "error", err)
		return []reading.BookClub{}
	}
	return out
}

func (s *profileService) JoinClub(ctx context.Context, userID, clubID string) (reading.ClubMembership, error) {
	clubID = strings.TrimSpace(clubID)
	if clubID == "" {
		return reading.ClubMembership{}, apperr.InvalidArgument("club id is required")
	}
	out, err := s.clubs.Join(ctx, userID, clubID, s.now())
	if err != nil {
		s.log.Error("Failed to join book club", "user_id", userID, "club_id", clubID, "error", err)
		return reading.ClubMembership{}, err
	}
	return out, nil
}

func (s *profileService) LeaveClub(ctx context.Context, userID, clubID string) error {
	if err := s.clubs.Leave(ctx, userID, clubID); err != nil {
		s.log.Error("Failed to leave book club", "user_id", userID, "club_id", clubID, "error", err)
		return err
	}
	return nil
}
