package services

import (
	"context"
	"errors"
	"testing"

	"github.com/GORLEABHILASH/booklovers/internal/clients/redis"
	"github.com/GORLEABHILASH/booklovers/internal/domain/reading"
	apperr "github.com/GORLEABHILASH/booklovers/internal/pkg/errors"
	"github.com/GORLEABHILASH/booklovers/internal/pkg/pointers"
)

func newProfileService(profiles *fakeProfiles, clubs *fakeClubs) ProfileService {
	return NewProfileService(nop, profiles, clubs, redis.NewLocalLocker(0, nil), 0, clock)
}

func TestUpdateProfileValidatesFirst(t *testing.T) {
	repo := &fakeProfiles{}
	_, err := newProfileService(repo, &fakeClubs{}).UpdateProfile(context.Background(), "USER-1", reading.ProfileUpdate{Age: pointers.Int(-4)})
	if !errors.Is(err, apperr.ErrInvalidArgument) {
		t.Fatalf("want ErrInvalidArgument got=%v", err)
	}
	if repo.updated != nil {
		t.Fatalf("invalid update reached the store")
	}
}

func TestUpdateProfileReturnsFreshProfile(t *testing.T) {
	repo := &fakeProfiles{profile: reading.Profile{ID: "USER-1", Name: "Ada Lovelace"}}
	got, err := newProfileService(repo, &fakeClubs{}).UpdateProfile(context.Background(), "USER-1", reading.ProfileUpdate{FirstName: "Ada", LastName: "Lovelace"})
	if err != nil {
		t.Fatalf("UpdateProfile: %v", err)
	}
	if got.Name != "Ada Lovelace" || repo.getCalls != 1 || repo.updated == nil {
		t.Fatalf("profile=%+v getCalls=%d", got, repo.getCalls)
	}
}

func TestUpdateProfileStoreFailure(t *testing.T) {
	repo := &fakeProfiles{err: errStore}
	if _, err := newProfileService(repo, &fakeClubs{}).UpdateProfile(context.Background(), "USER-1", reading.ProfileUpdate{}); !errors.Is(err, apperr.ErrStore) {
		t.Fatalf("want ErrStore got=%v", err)
	}
	if repo.getCalls != 0 {
		t.Fatalf("failed update should not re-read")
	}
}

func TestProfileMissing(t *testing.T) {
	repo := &fakeProfiles{getErr: apperr.NotFound("user USER-404")}
	if _, err := newProfileService(repo, &fakeClubs{}).Profile(context.Background(), "USER-404"); !errors.Is(err, apperr.ErrNotFound) {
		t.Fatalf("want ErrNotFound got=%v", err)
	}
}

func TestUpdatePreferencesNormalizes(t *testing.T) {
	repo := &fakeProfiles{}
	got, err := newProfileService(repo, &fakeClubs{}).UpdatePreferences(context.Background(), "USER-1", reading.Preferences{
		Genres: []string{" Fantasy ", "fantasy", ""},
	})
	if err != nil {
		t.Fatalf("UpdatePreferences: %v", err)
	}
	if repo.prefs == nil || len(repo.prefs.Genres) != 1 || repo.prefs.Genres[0] != "Fantasy" || repo.prefs.Authors == nil {
		t.Fatalf("stored: got=%+v", repo.prefs)
	}
	if len(got.Genres) != 1 {
		t.Fatalf("returned: got=%+v", got)
	}
}

func TestProfileReadsDegrade(t *testing.T) {
	svc := newProfileService(&fakeProfiles{err: errStore}, &fakeClubs{err: errStore})
	ctx := context.Background()
	if got := svc.Preferences(ctx, "USER-1"); got.Genres == nil || len(got.Genres) != 0 {
		t.Fatalf("Preferences: got=%+v", got)
	}
	if got := svc.Social(ctx, "USER-1"); got.BookClubs == nil || got.FollowersCount != 0 {
		t.Fatalf("Social: got=%+v", got)
	}
	if got := svc.ReadingOptions(ctx); got.Genres == nil {
		t.Fatalf("ReadingOptions: got=%+v", got)
	}
	if got := svc.Locations(ctx); got.Countries == nil {
		t.Fatalf("Locations: got=%+v", got)
	}
	if got := svc.AvailableClubs(ctx, "USER-1"); got == nil || len(got) != 0 {
		t.Fatalf("AvailableClubs: got=%v", got)
	}
	if got := svc.ProfileOptions(ctx); got.Professions == nil || len(got.Professions) != 0 {
		t.Fatalf("ProfileOptions: got=%+v", got)
	}
}

func TestProfileOptionsSeedsMissingLists(t *testing.T) {
	repo := &fakeProfiles{options: reading.ProfileOptions{Professions: []string{"Pilot"}, Hobbies: []string{}}}
	got := newProfileService(repo, &fakeClubs{}).ProfileOptions(context.Background())
	if len(repo.seeded) != 2 || repo.seeded[0] != nil || len(repo.seeded[1]) != len(reading.DefaultHobbies) {
		t.Fatalf("seeded: got=%v", repo.seeded)
	}
	if len(got.Professions) != 1 || len(got.Hobbies) != len(reading.DefaultHobbies) {
		t.Fatalf("options: got=%+v", got)
	}

	repo = &fakeProfiles{options: reading.ProfileOptions{Professions: []string{"Pilot"}, Hobbies: []string{"Chess"}}}
	newProfileService(repo, &fakeClubs{}).ProfileOptions(context.Background())
	if len(repo.seeded) != 0 {
		t.Fatalf("complete lists should not be seeded: %v", repo.seeded)
	}
}

func TestProfileOptionsSeedFailure(t *testing.T) {
	repo := &fakeProfiles{options: reading.ProfileOptions{Professions: []string{}, Hobbies: []string{}}, seedErr: errStore}
	got := newProfileService(repo, &fakeClubs{}).ProfileOptions(context.Background())
	if got.Professions == nil || len(got.Professions) != 0 || len(got.Hobbies) != 0 {
		t.Fatalf("want empty options got=%+v", got)
	}
}

func TestJoinClub(t *testing.T) {
	clubs := &fakeClubs{}
	svc := newProfileService(&fakeProfiles{}, clubs)
	if _, err := svc.JoinClub(context.Background(), "USER-1", "  "); !errors.Is(err, apperr.ErrInvalidArgument) {
		t.Fatalf("blank club: want ErrInvalidArgument got=%v", err)
	}
	got, err := svc.JoinClub(context.Background(), "USER-1", "BC-1")
	if err != nil {
		t.Fatalf("JoinClub: %v", err)
	}
	if got.ID != "BC-1" || !clubs.joinedAt.Equal(t0) {
		t.Fatalf("membership=%+v joinedAt=%s", got, clubs.joinedAt)
	}
}

func TestLeaveClubSurfacesErrors(t *testing.T) {
	svc := newProfileService(&fakeProfiles{}, &fakeClubs{err: apperr.NotFound("membership")})
	if err := svc.LeaveClub(context.Background(), "USER-1", "BC-1"); !errors.Is(err, apperr.ErrNotFound) {
		t.Fatalf("want ErrNotFound got=%v", err)
	}
}
