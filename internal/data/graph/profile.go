package graph

import (
	"context"
	"strings"

	"github.com/GORLEABHILASH/booklovers/internal/domain/reading"
	"github.com/GORLEABHILASH/booklovers/internal/observability"
	apperr "github.com/GORLEABHILASH/booklovers/internal/pkg/errors"
	"github.com/GORLEABHILASH/booklovers/internal/platform/logger"
	"github.com/GORLEABHILASH/booklovers/internal/platform/neo4jdb"
)

type ProfileRepo interface {
	Get(ctx context.Context, userID string) (reading.Profile, error)
	// Update applies every part of u in one transaction.
	Update(ctx context.Context, userID string, u reading.ProfileUpdate) error
	Preferences(ctx context.Context, userID string) (reading.Preferences, error)
	ReplacePreferences(ctx context.Context, userID string, p reading.Preferences) error
	Social(ctx context.Context, userID string) (reading.SocialData, error)

	ProfileOptions(ctx context.Context) (reading.ProfileOptions, error)
	SeedProfileOptions(ctx context.Context, professions, hobbies []string) error
	ReadingOptions(ctx context.Context) (reading.ReadingOptions, error)
	Locations(ctx context.Context) (reading.Locations, error)
}

type profileRepo struct {
	base
}

func NewProfileRepo(store neo4jdb.Store, log *logger.Logger, metrics *observability.Metrics) ProfileRepo {
	return &profileRepo{base: newBase(store, log, metrics, "ProfileRepo")}
}

func (r *profileRepo) Get(ctx context.Context, userID string) (reading.Profile, error) {
	var out reading.Profile
	err := r.read(ctx, "get_profile", func(ctx context.Context, tx neo4jdb.Tx) error {
		recs, err := tx.Run(ctx, `
MATCH (u:USER {id: $userId})
OPTIONAL MATCH (u)-[:LIVES_IN]->(city:CITY)-[:PART_OF]->(state:STATE)-[:PART_OF]->(country:COUNTRY)
WITH u, head(collect({city: city.name, state: state.name, country: country.name})) AS loc
RETURN u.id AS id,
       u.name AS name,
       u.email AS email,
       u.joinedDate AS joinedDate,
       u.phoneNumber AS phoneNumber,
       u.bio AS bio,
       u.firstName AS firstName,
       u.lastName AS lastName,
       u.age AS age,
       u.profession AS profession,
       u.hobbies AS hobbies,
       u.relationshipStatus AS relationshipStatus,
       u.activityLevel AS activityLevel,
       loc.city AS city,
       loc.state AS state,
       loc.country AS country
`, map[string]any{"userId": userID})
		if err != nil {
			return err
		}
		rec := neo4jdb.First(recs)
		if rec == nil {
			return apperr.NotFound("user %s", userID)
		}
		out = reading.Profile{
			ID:                 neo4jdb.String(rec, "id"),
			Name:               neo4jdb.String(rec, "name"),
			Email:              neo4jdb.String(rec, "email"),
			JoinedDate:         neo4jdb.Time(rec, "joinedDate"),
			PhoneNumber:        neo4jdb.String(rec, "phoneNumber"),
			Bio:                neo4jdb.String(rec, "bio"),
			FirstName:          neo4jdb.String(rec, "firstName"),
			LastName:           neo4jdb.String(rec, "lastName"),
			Age:                neo4jdb.IntPtr(rec, "age"),
			Profession:         neo4jdb.String(rec, "profession"),
			Hobbies:            neo4jdb.String(rec, "hobbies"),
			RelationshipStatus: neo4jdb.String(rec, "relationshipStatus"),
			ActivityLevel:      neo4jdb.String(rec, "activityLevel"),
			City:               neo4jdb.String(rec, "city"),
			State:              neo4jdb.String(rec, "state"),
			Country:            neo4jdb.String(rec, "country"),
		}
		return nil
	})
	if err != nil {
		return reading.Profile{}, err
	}
	return out, nil
}

func (r *profileRepo) Update(ctx context.Context, userID string, u reading.ProfileUpdate) error {
	return r.write(ctx, "update_profile", func(ctx context.Context, tx neo4jdb.Tx) error {
		var age any
		if u.Age != nil {
			age = int64(*u.Age)
		}
		recs, err := tx.Run(ctx, `
MATCH (u:USER {id: $userId})
SET u.name = $name,
    u.email = $email,
    u.phoneNumber = $phoneNumber,
    u.bio = $bio,
    u.firstName = $firstName,
    u.lastName = $lastName,
    u.age = $age,
    u.relationshipStatus = $relationshipStatus
RETURN u.id AS id
`, map[string]any{
			"userId":             userID,
			"name":               u.Name(),
			"email":              nullable(strings.TrimSpace(u.Email)),
			"phoneNumber":        nullable(strings.TrimSpace(u.PhoneNumber)),
			"bio":                nullable(u.Bio),
			"firstName":          nullable(strings.TrimSpace(u.FirstName)),
			"lastName":           nullable(strings.TrimSpace(u.LastName)),
			"age":                age,
			"relationshipStatus": nullable(strings.TrimSpace(u.RelationshipStatus)),
		})
		if err != nil {
			return err
		}
		if neo4jdb.First(recs) == nil {
			return apperr.NotFound("user %s", userID)
		}

		if profession := strings.TrimSpace(u.Profession); profession != "" {
			if _, err := tx.Run(ctx, `
MATCH (u:USER {id: $userId})
OPTIONAL MATCH (u)-[old:HAS_PROFESSION]->()
DELETE old
WITH DISTINCT u
MERGE (p:PROFESSION {name: $profession})
MERGE (u)-[:HAS_PROFESSION]->(p)
SET u.profession = $profession
`, map[string]any{"userId": userID, "profession": profession}); err != nil {
				return err
			}
		}

		hobbies := u.HobbyList()
		var hobbiesText any
		if len(hobbies) > 0 {
			hobbiesText = strings.Join(hobbies, ", ")
		}
		if _, err := tx.Run(ctx, `
MATCH (u:USER {id: $userId})
OPTIONAL MATCH (u)-[old:HAS_HOBBY]->()
DELETE old
WITH DISTINCT u
SET u.hobbies = $hobbiesText
WITH u
UNWIND $hobbies AS hobbyName
MERGE (h:HOBBY {name: hobbyName})
MERGE (u)-[:HAS_HOBBY]->(h)
`, map[string]any{"userId": userID, "hobbies": hobbies, "hobbiesText": hobbiesText}); err != nil {
			return err
		}

		if !u.HasLocation() {
			return nil
		}
		recs, err = tx.Run(ctx, `
MATCH (u:USER {id: $userId})
MATCH (city:CITY {name: $city})-[:PART_OF]->(:STATE {name: $state})-[:PART_OF]->(:COUNTRY {name: $country})
WITH u, city
LIMIT 1
OPTIONAL MATCH (u)-[old:LIVES_IN]->()
DELETE old
WITH DISTINCT u, city
MERGE (u)-[:LIVES_IN]->(city)
RETURN city.name AS city
`, map[string]any{
			"userId":  userID,
			"city":    strings.TrimSpace(u.City),
			"state":   strings.TrimSpace(u.State),
			"country": strings.TrimSpace(u.Country),
		})
		if err != nil {
			return err
		}
		if neo4jdb.First(recs) == nil {
			return apperr.InvalidArgument("unknown location %s, %s, %s", u.City, u.State, u.Country)
		}
		return nil
	})
}

func (r *profileRepo) Preferences(ctx context.Context, userID string) (reading.Preferences, error) {
	out := reading.EmptyPreferences()
	err := r.read(ctx, "get_preferences", func(ctx context.Context, tx neo4jdb.Tx) error {
		recs, err := tx.Run(ctx, `
MATCH (u:USER {id: $userId})
OPTIONAL MATCH (u)-[:PREFERS_GENRE]->(g:GENRE)
WITH u, collect(DISTINCT g.name) AS genres
OPTIONAL MATCH (u)-[:PREFERS_AUTHOR]->(a:AUTHOR)
WITH u, genres, collect(DISTINCT a.name) AS authors
OPTIONAL MATCH (u)-[:PREFERS_THEME]->(t:THEME)
RETURN genres, authors, collect(DISTINCT t.name) AS themes
`, map[string]any{"userId": userID})
		if err != nil {
			return err
		}
		rec := neo4jdb.First(recs)
		out = reading.Preferences{
			Genres:  neo4jdb.Strings(rec, "genres"),
			Authors: neo4jdb.Strings(rec, "authors"),
			Themes:  neo4jdb.Strings(rec, "themes"),
		}
		return nil
	})
	if err != nil {
		return reading.EmptyPreferences(), err
	}
	return out, nil
}

// preferenceQuery replaces every rel edge from the user with edges to label
// nodes named in $names, creating missing nodes.
func preferenceQuery(rel, label string) string {
	return `
MATCH (u:USER {id: $userId})
OPTIONAL MATCH (u)-[old:` + rel + `]->()
DELETE old
WITH DISTINCT u
UNWIND $names AS name
MERGE (n:` + label + ` {name: name})
MERGE (u)-[:` + rel + `]->(n)
`
}

func (r *profileRepo) ReplacePreferences(ctx context.Context, userID string, p reading.Preferences) error {
	return r.write(ctx, "replace_preferences", func(ctx context.Context, tx neo4jdb.Tx) error {
		recs, err := tx.Run(ctx, `
MATCH (u:USER {id: $userId})
RETURN u.id AS id
`, map[string]any{"userId": userID})
		if err != nil {
			return err
		}
		if neo4jdb.First(recs) == nil {
			return apperr.NotFound("user %s", userID)
		}
		for _, kind := range []struct {
			rel, label string
			names      []string
		}{
			{"PREFERS_GENRE", "GENRE", p.Genres},
			{"PREFERS_AUTHOR", "AUTHOR", p.Authors},
			{"PREFERS_THEME", "THEME", p.Themes},
		} {
			names := kind.names
			if names == nil {
				names = []string{}
			}
			if _, err := tx.Run(ctx, preferenceQuery(kind.rel, kind.label), map[string]any{"userId": userID, "names": names}); err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *profileRepo) Social(ctx context.Context, userID string) (reading.SocialData, error) {
	out := reading.EmptySocialData()
	err := r.read(ctx, "social_data", func(ctx context.Context, tx neo4jdb.Tx) error {
		recs, err := tx.Run(ctx, `
MATCH (u:USER {id: $userId})
OPTIONAL MATCH (u)<-[:FOLLOWS]-(follower:USER)
WITH u, count(DISTINCT follower) AS followersCount
OPTIONAL MATCH (u)-[:FOLLOWS]->(following:USER)
WITH u, followersCount, count(DISTINCT following) AS followingCount
OPTIONAL MATCH (u)-[:COMMENTED]->(comment:COMMENT)
WITH u, followersCount, followingCount, count(DISTINCT comment) AS commentsCount
OPTIONAL MATCH (u)-[:ATTENDED]->(event:EVENT)
RETURN followersCount, followingCount, commentsCount, count(DISTINCT event) AS eventsAttended
`, map[string]any{"userId": userID})
		if err != nil {
			return err
		}
		rec := neo4jdb.First(recs)
		out.FollowersCount = neo4jdb.Int(rec, "followersCount")
		out.FollowingCount = neo4jdb.Int(rec, "followingCount")
		out.CommentsCount = neo4jdb.Int(rec, "commentsCount")
		out.EventsAttended = neo4jdb.Int(rec, "eventsAttended")

		clubs, err := tx.Run(ctx, `
MATCH (:USER {id: $userId})-[m:MEMBER_OF]->(club:BOOK_CLUB)
OPTIONAL MATCH (club)<-[:MEMBER_OF]-(member:USER)
WITH club, m, count(DISTINCT member) AS memberCount
RETURN club.id AS clubId,
       club.name AS clubName,
       m.role AS memberRole,
       m.joinDate AS joinDate,
       memberCount
ORDER BY clubName
`, map[string]any{"userId": userID})
		if err != nil {
			return err
		}
		for _, rec := range clubs {
			out.BookClubs = append(out.BookClubs, reading.ClubMembership{
				ID:          neo4jdb.String(rec, "clubId"),
				Name:        neo4jdb.String(rec, "clubName"),
				MemberRole:  neo4jdb.String(rec, "memberRole"),
				JoinedDate:  neo4jdb.Time(rec, "joinDate"),
				MemberCount: neo4jdb.Int(rec, "memberCount"),
			})
		}
		return nil
	})
	if err != nil {
		return reading.EmptySocialData(), err
	}
	return out, nil
}

func (r *profileRepo) ProfileOptions(ctx context.Context) (reading.ProfileOptions, error) {
	out := reading.ProfileOptions{Professions: []string{}, Hobbies: []string{}}
	err := r.read(ctx, "profile_options", func(ctx context.Context, tx neo4jdb.Tx) error {
		recs, err := tx.Run(ctx, `
OPTIONAL MATCH (p:PROFESSION)
WITH collect(DISTINCT p.name) AS professions
OPTIONAL MATCH (h:HOBBY)
RETURN professions, collect(DISTINCT h.name) AS hobbies
`, nil)
		if err != nil {
			return err
		}
		rec := neo4jdb.First(recs)
		out.Professions = neo4jdb.Strings(rec, "professions")
		out.Hobbies = neo4jdb.Strings(rec, "hobbies")
		return nil
	})
	if err != nil {
		return reading.ProfileOptions{Professions: []string{}, Hobbies: []string{}}, err
	}
	return out, nil
}

func (r *profileRepo) SeedProfileOptions(ctx context.Context, professions, hobbies []string) error {
	return r.write(ctx, "seed_profile_options", func(ctx context.Context, tx neo4jdb.Tx) error {
		if len(professions) > 0 {
			if _, err := tx.Run(ctx, `
UNWIND $names AS name
MERGE (:PROFESSION {name: name})
`, map[string]any{"names": professions}); err != nil {
				return err
			}
		}
		if len(hobbies) > 0 {
			if _, err := tx.Run(ctx, `
UNWIND $names AS name
MERGE (:HOBBY {name: name})
`, map[string]any{"names": hobbies}); err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *profileRepo) ReadingOptions(ctx context.Context) (reading.ReadingOptions, error) {
	out := reading.ReadingOptions{Genres: []string{}, Authors: []string{}, Themes: []string{}}
	err := r.read(ctx, "reading_options", func(ctx context.Context, tx neo4jdb.Tx) error {
		recs, err := tx.Run(ctx, `
OPTIONAL MATCH (g:GENRE)
WITH collect(DISTINCT g.name) AS genres
OPTIONAL MATCH (a:AUTHOR)
WITH genres, collect(DISTINCT a.name) AS authors
OPTIONAL MATCH (t:THEME)
RETURN genres, authors, collect(DISTINCT t.name) AS themes
`, nil)
		if err != nil {
			return err
		}
		rec := neo4jdb.First(recs)
		out = reading.ReadingOptions{
			Genres:  neo4jdb.Strings(rec, "genres"),
			Authors: neo4jdb.Strings(rec, "authors"),
			Themes:  neo4jdb.Strings(rec, "themes"),
		}
		return nil
	})
	if err != nil {
		return reading.ReadingOptions{Genres: []string{}, Authors: []string{}, Themes: []string{}}, err
	}
	return out, nil
}

func (r *profileRepo) Locations(ctx context.Context) (reading.Locations, error) {
	out := reading.EmptyLocations()
	err := r.read(ctx, "locations", func(ctx context.Context, tx neo4jdb.Tx) error {
		recs, err := tx.Run(ctx, `
MATCH (country:COUNTRY)
OPTIONAL MATCH (state:STATE)-[:PART_OF]->(country)
OPTIONAL MATCH (city:CITY)-[:PART_OF]->(state)
WITH country, state, city
ORDER BY country.name, state.name, city.name
RETURN collect(DISTINCT country.name) AS countries,
       collect(DISTINCT CASE WHEN state IS NULL THEN null ELSE {name: state.name, country: country.name} END) AS states,
       collect(DISTINCT CASE WHEN city IS NULL THEN null ELSE {name: city.name, state: state.name} END) AS cities
`, nil)
		if err != nil {
			return err
		}
		rec := neo4jdb.First(recs)
		out.Countries = neo4jdb.Strings(rec, "countries")
		for _, m := range neo4jdb.Maps(rec, "states") {
			out.States = append(out.States, reading.StateOption{
				Name:    neo4jdb.AsString(m["name"]),
				Country: neo4jdb.AsString(m["country"]),
			})
		}
		for _, m := range neo4jdb.Maps(rec, "cities") {
			out.Cities = append(out.Cities, reading.CityOption{
				Name:  neo4jdb.AsString(m["name"]),
				State: neo4jdb.AsString(m["state"]),
			})
		}
		return nil
	})
	if err != nil {
		return reading.EmptyLocations(), err
	}
	return out, nil
}
