package services

import (
	"context"
	"errors"
	"testing"

	"github.com/GORLEABHILASH/booklovers/internal/domain/reading"
	apperr "github.com/GORLEABHILASH/booklovers/internal/pkg/errors"
)

func TestGetStatusDefaultsOnStoreError(t *testing.T) {
	svc := NewBookStatusService(nop, &fakeStatus{err: errStore}, clock)
	got, err := svc.GetStatus(context.Background(), "USER-1", "BOOK-1")
	if err != nil {
		t.Fatalf("GetStatus: %v", err)
	}
	if got.Status != reading.StatusNone || got.CurrentPage != 1 {
		t.Fatalf("default status: got=%+v", got)
	}
}

func TestUpdateStatusReplaces(t *testing.T) {
	repo := &fakeStatus{}
	svc := NewBookStatusService(nop, repo, clock)
	page := 30

	got, err := svc.UpdateStatus(context.Background(), "USER-1", "BOOK-1", "reading", &page)
	if err != nil {
		t.Fatalf("UpdateStatus: %v", err)
	}
	if got != reading.StatusReading {
		t.Fatalf("status: want=%s got=%s", reading.StatusReading, got)
	}
	if len(repo.replaced) != 1 {
		t.Fatalf("Replace calls: want=1 got=%d", len(repo.replaced))
	}
	ch := repo.replaced[0]
	if ch.CurrentPage == nil || *ch.CurrentPage != 30 || !ch.At.Equal(t0) {
		t.Fatalf("change: got=%+v", ch)
	}
}

func TestUpdateStatusRejectsUnknown(t *testing.T) {
	repo := &fakeStatus{}
	svc := NewBookStatusService(nop, repo, clock)
	if _, err := svc.UpdateStatus(context.Background(), "USER-1", "BOOK-1", "skimming", nil); !errors.Is(err, apperr.ErrInvalidArgument) {
		t.Fatalf("want ErrInvalidArgument got=%v", err)
	}
	if len(repo.replaced) != 0 {
		t.Fatalf("Replace must not run")
	}
}

func TestUpdateCurrentPageValidates(t *testing.T) {
	svc := NewBookStatusService(nop, &fakeStatus{}, clock)
	if _, err := svc.UpdateCurrentPage(context.Background(), "USER-1", "BOOK-1", 0); !errors.Is(err, apperr.ErrInvalidArgument) {
		t.Fatalf("want ErrInvalidArgument got=%v", err)
	}
	got, err := svc.UpdateCurrentPage(context.Background(), "USER-1", "BOOK-1", 50)
	if err != nil {
		t.Fatalf("UpdateCurrentPage: %v", err)
	}
	if got.CurrentPage != 50 || got.PercentComplete != 25 {
		t.Fatalf("progress: got=%+v", got)
	}
}

func TestUpdateCurrentPageNotReading(t *testing.T) {
	svc := NewBookStatusService(nop, &fakeStatus{pageErr: apperr.NotFound("not reading")}, clock)
	if _, err := svc.UpdateCurrentPage(context.Background(), "USER-1", "BOOK-1", 5); !errors.Is(err, apperr.ErrNotFound) {
		t.Fatalf("want ErrNotFound got=%v", err)
	}
}

func TestRateBookValidates(t *testing.T) {
	svc := NewBookStatusService(nop, &fakeStatus{}, clock)
	for _, v := range []int{0, 6, -1} {
		if _, err := svc.RateBook(context.Background(), "USER-1", "BOOK-1", v); !errors.Is(err, apperr.ErrInvalidArgument) {
			t.Fatalf("rating %d: want ErrInvalidArgument got=%v", v, err)
		}
	}
	got, err := svc.RateBook(context.Background(), "USER-1", "BOOK-1", 4)
	if err != nil {
		t.Fatalf("RateBook: %v", err)
	}
	if got.Value != 4 || !got.Timestamp.Equal(t0) {
		t.Fatalf("rating: got=%+v", got)
	}
}

func TestSaveReviewBlankDeletes(t *testing.T) {
	repo := &fakeStatus{}
	svc := NewBookStatusService(nop, repo, clock)

	got, err := svc.SaveReview(context.Background(), "USER-1", "BOOK-1", "   \n\t")
	if err != nil {
		t.Fatalf("SaveReview: %v", err)
	}
	if got != nil {
		t.Fatalf("blank review: want nil got=%+v", got)
	}
	if repo.deleted != 1 || len(repo.saved) != 0 {
		t.Fatalf("deleted=%d saved=%d", repo.deleted, len(repo.saved))
	}
}

func TestSaveReviewStoresContent(t *testing.T) {
	repo := &fakeStatus{}
	svc := NewBookStatusService(nop, repo, clock)

	got, err := svc.SaveReview(context.Background(), "USER-1", "BOOK-1", "loved it")
	if err != nil {
		t.Fatalf("SaveReview: %v", err)
	}
	if got == nil || got.Content != "loved it" {
		t.Fatalf("review: got=%+v", got)
	}
	if len(repo.saved) != 1 || repo.saved[0] != "loved it" {
		t.Fatalf("saved: got=%v", repo.saved)
	}
}

func TestGetReviewSwallowsStoreError(t *testing.T) {
	svc := NewBookStatusService(nop, &fakeStatus{err: errStore}, clock)
	got, err := svc.GetReview(context.Background(), "USER-1", "BOOK-1")
	if err != nil || got != nil {
		t.Fatalf("GetReview: got=%v err=%v", got, err)
	}
}
