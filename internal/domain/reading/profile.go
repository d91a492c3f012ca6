package reading

import (
	"strings"
	"time"

	"github.com/GORLEABHILASH/booklovers/internal/normalization"
	apperr "github.com/GORLEABHILASH/booklovers/internal/pkg/errors"
)

const MaxAge = 150

type Profile struct {
	ID                 string     `json:"id"`
	Name               string     `json:"name"`
	Email              string     `json:"email"`
	JoinedDate         *time.Time `json:"joinedDate"`
	PhoneNumber        string     `json:"phoneNumber"`
	Bio                string     `json:"bio"`
	FirstName          string     `json:"firstName"`
	LastName           string     `json:"lastName"`
	Age                *int       `json:"age"`
	Profession         string     `json:"profession"`
	Hobbies            string     `json:"hobbies"`
	RelationshipStatus string     `json:"relationshipStatus"`
	ActivityLevel      string     `json:"activityLevel"`
	City               string     `json:"city"`
	State              string     `json:"state"`
	Country            string     `json:"country"`
}

// ProfileUpdate replaces the editable profile fields. Hobbies is the
// comma-separated form value; a blank value clears every hobby. A blank
// profession keeps the current one. Location is applied only when all three
// parts are given.
type ProfileUpdate struct {
	FirstName          string
	LastName           string
	Email              string
	PhoneNumber        string
	Bio                string
	Age                *int
	RelationshipStatus string
	Profession         string
	Hobbies            string
	City               string
	State              string
	Country            string
}

// Name is the display name stored alongside first and last name.
func (u ProfileUpdate) Name() string {
	return strings.TrimSpace(strings.TrimSpace(u.FirstName) + " " + strings.TrimSpace(u.LastName))
}

func (u ProfileUpdate) HobbyList() []string { return normalization.SplitList(u.Hobbies) }

func (u ProfileUpdate) HasLocation() bool {
	return strings.TrimSpace(u.City) != "" && strings.TrimSpace(u.State) != "" && strings.TrimSpace(u.Country) != ""
}

func (u ProfileUpdate) Validate() error {
	if u.Age != nil && (*u.Age < 0 || *u.Age > MaxAge) {
		return apperr.InvalidArgument("age must be between 0 and %d", MaxAge)
	}
	parts := 0
	for _, p := range []string{u.City, u.State, u.Country} {
		if strings.TrimSpace(p) != "" {
			parts++
		}
	}
	if parts != 0 && parts != 3 {
		return apperr.InvalidArgument("location needs city, state and country")
	}
	return nil
}

// Preferences drive the similar-readers recommendations. Each list replaces
// the stored one; an empty list removes every preference of that kind.
type Preferences struct {
	Genres  []string `json:"genres"`
	Authors []string `json:"authors"`
	Themes  []string `json:"themes"`
}

func EmptyPreferences() Preferences {
	return Preferences{Genres: []string{}, Authors: []string{}, Themes: []string{}}
}

// Normalize trims names and drops blanks and duplicates in every list.
func (p Preferences) Normalize() Preferences {
	return Preferences{
		Genres:  normalization.Names(p.Genres),
		Authors: normalization.Names(p.Authors),
		Themes:  normalization.Names(p.Themes),
	}
}

type ClubMembership struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	MemberRole  string     `json:"memberRole"`
	JoinedDate  *time.Time `json:"joinedDate"`
	MemberCount int        `json:"memberCount"`
}

type SocialData struct {
	FollowersCount int              `json:"followersCount"`
	FollowingCount int              `json:"followingCount"`
	CommentsCount  int              `json:"commentsCount"`
	EventsAttended int              `json:"eventsAttended"`
	BookClubs      []ClubMembership `json:"bookClubs"`
}

func EmptySocialData() SocialData {
	return SocialData{BookClubs: []ClubMembership{}}
}

// BookClub is a club listed for discovery.
type BookClub struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	MemberCount int      `json:"memberCount"`
	Genres      []string `json:"genres"`
}

const RoleMember = "Member"

type ProfileOptions struct {
	Professions []string `json:"professions"`
	Hobbies     []string `json:"hobbies"`
}

// Seed lists used when the graph holds no PROFESSION or HOBBY nodes yet.
var (
	DefaultProfessions = []string{
		"Software Engineer", "Teacher", "Doctor", "Nurse", "Lawyer",
		"Accountant", "Artist", "Writer", "Designer", "Manager",
		"Chef", "Mechanic", "Electrician", "Architect", "Scientist",
		"Marketing Professional", "Sales Representative", "Student",
		"Retired", "Entrepreneur", "Other",
	}
	DefaultHobbies = []string{
		"Reading", "Writing", "Painting", "Drawing", "Photography",
		"Cooking", "Baking", "Gardening", "Hiking", "Running",
		"Swimming", "Cycling", "Yoga", "Dancing", "Music",
		"Gaming", "Chess", "Traveling", "Knitting", "Woodworking",
		"Fishing", "Bird Watching", "Collecting", "DIY Projects",
	}
)

type ReadingOptions struct {
	Genres  []string `json:"genres"`
	Authors []string `json:"authors"`
	Themes  []string `json:"themes"`
}

type StateOption struct {
	Name    string `json:"name"`
	Country string `json:"country"`
}

type CityOption struct {
	Name  string `json:"name"`
	State string `json:"state"`
}

type Locations struct {
	Countries []string      `json:"countries"`
	States    []StateOption `json:"states"`
	Cities    []CityOption  `json:"cities"`
}

func EmptyLocations() Locations {
	return Locations{Countries: []string{}, States: []StateOption{}, Cities: []CityOption{}}
}
