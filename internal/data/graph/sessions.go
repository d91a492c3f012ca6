package graph

import (
	"context"
	"strings"
	"time"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"github.com/GORLEABHILASH/booklovers/internal/domain/reading"
	"github.com/GORLEABHILASH/booklovers/internal/observability"
	apperr "github.com/GORLEABHILASH/booklovers/internal/pkg/errors"
	"github.com/GORLEABHILASH/booklovers/internal/platform/logger"
	"github.com/GORLEABHILASH/booklovers/internal/platform/neo4jdb"
)

// ActiveSessionRow is an open session together with the book it is for.
type ActiveSessionRow struct {
	Session reading.Session
	Book    reading.BookRef
}

type SessionRepo interface {
	// Start persists an opened session and marks the book as reading. It fails
	// with ErrConflict when the pair already has an active session.
	Start(ctx context.Context, s *reading.Session) error
	// End closes the caller's active session and back-propagates progress.
	End(ctx context.Context, userID, sessionID string, endPage int, notes string, now time.Time) (reading.SessionSummary, error)
	// Active returns nil when no session is open. An empty bookID matches any book.
	Active(ctx context.Context, userID, bookID string) (*ActiveSessionRow, error)
	Closed(ctx context.Context, userID, bookID string) ([]reading.Session, error)
	UserBookStats(ctx context.Context, userID, bookID string) (reading.SessionStats, error)
	BookStats(ctx context.Context, bookID string) (reading.BookReadingStats, error)
}

type sessionRepo struct {
	base
}

func NewSessionRepo(store neo4jdb.Store, log *logger.Logger, metrics *observability.Metrics) SessionRepo {
	return &sessionRepo{base: newBase(store, log, metrics, "SessionRepo")}
}

func (r *sessionRepo) Start(ctx context.Context, s *reading.Session) error {
	return r.write(ctx, "start_session", func(ctx context.Context, tx neo4jdb.Tx) error {
		pageCount, err := pairExists(ctx, tx, s.UserID, s.BookID)
		if err != nil {
			return err
		}

		open, err := tx.Run(ctx, `
MATCH (:USER {id: $userId})-[:HAS_SESSION]->(rs:READING_SESSION {active: true})-[:FOR_BOOK]->(:BOOK {id: $bookId})
RETURN rs.id AS sessionId
LIMIT 1
`, map[string]any{"userId": s.UserID, "bookId": s.BookID})
		if err != nil {
			return err
		}
		if rec := neo4jdb.First(open); rec != nil {
			return apperr.Conflict("reading session %s is already active", neo4jdb.String(rec, "sessionId"))
		}

		_, err = tx.Run(ctx, `
MATCH (u:USER {id: $userId}), (b:BOOK {id: $bookId})
CREATE (rs:READING_SESSION {id: $sessionId, startPage: $startPage, startTime: $startTime, active: true})
CREATE (u)-[:HAS_SESSION]->(rs)
CREATE (rs)-[:FOR_BOOK]->(b)
WITH u, b
OPTIONAL MATCH (u)-[other:FINISHED|WANTS_TO_READ]->(b)
DELETE other
WITH DISTINCT u, b
MERGE (u)-[r:READING]->(b)
ON CREATE SET r.date = $startTime, r.startDate = $startTime
SET r.currentPage = $startPage,
    r.lastUpdated = $startTime,
    r.percentComplete = $percentComplete
`, map[string]any{
			"userId":          s.UserID,
			"bookId":          s.BookID,
			"sessionId":       s.ID,
			"startPage":       int64(s.StartPage),
			"startTime":       s.StartTime,
			"percentComplete": reading.PercentComplete(s.StartPage, pageCount),
		})
		return err
	})
}

func (r *sessionRepo) End(ctx context.Context, userID, sessionID string, endPage int, notes string, now time.Time) (reading.SessionSummary, error) {
	var summary reading.SessionSummary
	err := r.write(ctx, "end_session", func(ctx context.Context, tx neo4jdb.Tx) error {
		recs, err := tx.Run(ctx, `
MATCH (u:USER)-[:HAS_SESSION]->(rs:READING_SESSION {id: $sessionId})-[:FOR_BOOK]->(b:BOOK)
RETURN u.id AS userId,
       b.id AS bookId,
       b.pageCount AS pageCount,
       rs.startPage AS startPage,
       rs.startTime AS startTime,
       rs.active AS active
`, map[string]any{"sessionId": sessionID})
		if err != nil {
			return err
		}
		rec := neo4jdb.First(recs)
		if rec == nil || neo4jdb.String(rec, "userId") != userID {
			return apperr.NotFound("reading session %s", sessionID)
		}

		session := reading.Session{
			ID:        sessionID,
			UserID:    userID,
			BookID:    neo4jdb.String(rec, "bookId"),
			StartPage: neo4jdb.Int(rec, "startPage"),
			Active:    neo4jdb.Bool(rec, "active"),
		}
		if st := neo4jdb.Time(rec, "startTime"); st != nil {
			session.StartTime = *st
		}
		sum, err := session.Close(endPage, notes, neo4jdb.Int(rec, "pageCount"), now)
		if err != nil {
			return err
		}

		// The active guard makes a concurrent second close match nothing.
		closed, err := tx.Run(ctx, `
MATCH (rs:READING_SESSION {id: $sessionId})
WHERE rs.active = true
SET rs.endPage = $endPage,
    rs.endTime = $endTime,
    rs.duration = $duration,
    rs.pagesRead = $pagesRead,
    rs.notes = $notes,
    rs.active = false
RETURN rs.id AS sessionId
`, map[string]any{
			"sessionId": sessionID,
			"endPage":   int64(sum.EndPage),
			"endTime":   *session.EndTime,
			"duration":  int64(sum.DurationMinutes),
			"pagesRead": int64(sum.PagesRead),
			"notes":     nullable(session.Notes),
		})
		if err != nil {
			return err
		}
		if len(closed) == 0 {
			return apperr.InvalidState("reading session %s is not active", sessionID)
		}

		if _, err := tx.Run(ctx, `
MATCH (:USER {id: $userId})-[r:READING]->(:BOOK {id: $bookId})
SET r.currentPage = $endPage,
    r.lastUpdated = $now,
    r.percentComplete = $percentComplete
`, map[string]any{
			"userId":          userID,
			"bookId":          session.BookID,
			"endPage":         int64(sum.EndPage),
			"now":             *session.EndTime,
			"percentComplete": sum.PercentComplete,
		}); err != nil {
			return err
		}

		if err := appendHistory(ctx, tx, userID, session.BookID, reading.ProgressEntry(sum, session.Notes, *session.EndTime)); err != nil {
			return err
		}
		summary = sum
		return nil
	})
	if err != nil {
		return reading.SessionSummary{}, err
	}
	return summary, nil
}

func (r *sessionRepo) Active(ctx context.Context, userID, bookID string) (*ActiveSessionRow, error) {
	var out *ActiveSessionRow
	err := r.read(ctx, "active_session", func(ctx context.Context, tx neo4jdb.Tx) error {
		recs, err := tx.Run(ctx, `
MATCH (:USER {id: $userId})-[:HAS_SESSION]->(rs:READING_SESSION {active: true})-[:FOR_BOOK]->(b:BOOK)
WHERE $bookId IS NULL OR b.id = $bookId
OPTIONAL MATCH (b)<-[:WROTE]-(a:AUTHOR)
RETURN rs.id AS sessionId,
       rs.startPage AS startPage,
       rs.startTime AS startTime,
       b.id AS bookId,
       b.title AS bookTitle,
       coalesce(a.name, b.author) AS bookAuthor,
       b.coverImage AS bookCover
ORDER BY rs.startTime DESC
LIMIT 1
`, map[string]any{"userId": userID, "bookId": nullable(strings.TrimSpace(bookID))})
		if err != nil {
			return err
		}
		rec := neo4jdb.First(recs)
		if rec == nil {
			return nil
		}
		row := &ActiveSessionRow{
			Session: decodeSession(rec),
			Book: reading.BookRef{
				ID:         neo4jdb.String(rec, "bookId"),
				Title:      neo4jdb.String(rec, "bookTitle"),
				Author:     neo4jdb.String(rec, "bookAuthor"),
				CoverImage: neo4jdb.String(rec, "bookCover"),
			},
		}
		row.Session.UserID = userID
		row.Session.BookID = row.Book.ID
		row.Session.Active = true
		out = row
		return nil
	})
	return out, err
}

func (r *sessionRepo) Closed(ctx context.Context, userID, bookID string) ([]reading.Session, error) {
	out := []reading.Session{}
	err := r.read(ctx, "closed_sessions", func(ctx context.Context, tx neo4jdb.Tx) error {
		recs, err := tx.Run(ctx, `
MATCH (:USER {id: $userId})-[:HAS_SESSION]->(rs:READING_SESSION)-[:FOR_BOOK]->(:BOOK {id: $bookId})
WHERE rs.active = false
RETURN rs.id AS sessionId,
       rs.startPage AS startPage,
       rs.endPage AS endPage,
       rs.startTime AS startTime,
       rs.endTime AS endTime,
       rs.duration AS duration,
       rs.pagesRead AS pagesRead,
       rs.notes AS notes
ORDER BY rs.endTime DESC
`, map[string]any{"userId": userID, "bookId": bookID})
		if err != nil {
			return err
		}
		for _, rec := range recs {
			s := decodeSession(rec)
			s.UserID, s.BookID = userID, bookID
			out = append(out, s)
		}
		return nil
	})
	if err != nil {
		return []reading.Session{}, err
	}
	return out, nil
}

func (r *sessionRepo) UserBookStats(ctx context.Context, userID, bookID string) (reading.SessionStats, error) {
	var out reading.SessionStats
	err := r.read(ctx, "user_book_session_stats", func(ctx context.Context, tx neo4jdb.Tx) error {
		recs, err := tx.Run(ctx, `
MATCH (:USER {id: $userId})-[:HAS_SESSION]->(rs:READING_SESSION)-[:FOR_BOOK]->(:BOOK {id: $bookId})
WHERE rs.active = false
RETURN count(rs) AS sessionCount,
       sum(rs.duration) AS totalReadingMinutes,
       sum(rs.pagesRead) AS totalPagesRead,
       avg(rs.duration) AS avgSessionDuration,
       avg(rs.pagesRead) AS avgPagesPerSession
`, map[string]any{"userId": userID, "bookId": bookID})
		if err != nil {
			return err
		}
		rec := neo4jdb.First(recs)
		out = reading.SessionStats{
			SessionCount:        neo4jdb.Int(rec, "sessionCount"),
			TotalReadingMinutes: neo4jdb.Int(rec, "totalReadingMinutes"),
			TotalPagesRead:      neo4jdb.Int(rec, "totalPagesRead"),
			AvgSessionDuration:  neo4jdb.Float(rec, "avgSessionDuration"),
			AvgPagesPerSession:  neo4jdb.Float(rec, "avgPagesPerSession"),
		}
		return nil
	})
	if err != nil {
		return reading.SessionStats{}, err
	}
	return out, nil
}

func (r *sessionRepo) BookStats(ctx context.Context, bookID string) (reading.BookReadingStats, error) {
	var out reading.BookReadingStats
	err := r.read(ctx, "book_reading_stats", func(ctx context.Context, tx neo4jdb.Tx) error {
		recs, err := tx.Run(ctx, `
MATCH (b:BOOK {id: $bookId})
OPTIONAL MATCH (b)<-[:FOR_BOOK]-(rs:READING_SESSION)
WHERE rs.active = false
WITH b,
     count(rs) AS sessionCount,
     avg(rs.duration) AS avgSessionDuration,
     avg(rs.pagesRead) AS avgPagesPerSession
OPTIONAL MATCH (u:USER)-[:HAS_SESSION]->(s:READING_SESSION {active: false})-[:FOR_BOOK]->(b)
WITH sessionCount, avgSessionDuration, avgPagesPerSession, u,
     min(s.startTime) AS firstStart,
     max(s.endTime) AS lastEnd
RETURN sessionCount,
       avgSessionDuration,
       avgPagesPerSession,
       avg(CASE WHEN u IS NULL THEN null ELSE duration.inDays(firstStart, lastEnd).days END) AS avgDaysToFinish
`, map[string]any{"bookId": bookID})
		if err != nil {
			return err
		}
		rec := neo4jdb.First(recs)
		out = reading.BookReadingStats{
			SessionCount:       neo4jdb.Int(rec, "sessionCount"),
			AvgSessionDuration: neo4jdb.Float(rec, "avgSessionDuration"),
			AvgPagesPerSession: neo4jdb.Float(rec, "avgPagesPerSession"),
			AvgDaysToFinish:    neo4jdb.Float(rec, "avgDaysToFinish"),
		}
		return nil
	})
	if err != nil {
		return reading.BookReadingStats{}, err
	}
	return out, nil
}

func decodeSession(rec *neo4j.Record) reading.Session {
	s := reading.Session{
		ID:              neo4jdb.String(rec, "sessionId"),
		StartPage:       neo4jdb.Int(rec, "startPage"),
		EndPage:         neo4jdb.IntPtr(rec, "endPage"),
		EndTime:         neo4jdb.Time(rec, "endTime"),
		DurationMinutes: neo4jdb.IntPtr(rec, "duration"),
		PagesRead:       neo4jdb.IntPtr(rec, "pagesRead"),
		Notes:           neo4jdb.String(rec, "notes"),
	}
	if st := neo4jdb.Time(rec, "startTime"); st != nil {
		s.StartTime = *st
	}
	return s
}

func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}
