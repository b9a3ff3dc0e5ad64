package ledger_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/imnoob36363636-cell/Lost-and-found-2025-new8/internal/ledger"
	"github.com/imnoob36363636-cell/Lost-and-found-2025-new8/internal/models"
)

func submitParams(raw string) ledger.SubmitParams {
	return ledger.SubmitParams{
		ItemID:        "item-1",
		RequesterID:   "finder",
		OwnerID:       "owner",
		Question:      "What color?",
		CorrectAnswer: "blue",
		RawAnswer:     raw,
	}
}

func TestSubmitAnswerCreatesPendingRecord(t *testing.T) {
	l := ledger.NewMemoryLedger()
	ctx := context.Background()

	res, err := l.SubmitAnswer(ctx, submitParams("BLUE "))
	if err != nil {
		t.Fatalf("SubmitAnswer err: %v", err)
	}
	if !res.AnswerCorrect {
		t.Fatal("expected answer to be correct")
	}

	r, err := l.Get(ctx, "item-1", "finder")
	if err != nil {
		t.Fatalf("Get err: %v", err)
	}
	if r.Status != models.StatusPending {
		t.Fatalf("status = %s, want pending", r.Status)
	}
	if r.SubmittedAnswer == nil || *r.SubmittedAnswer != "blue" {
		t.Fatalf("submitted answer not normalized: %v", r.SubmittedAnswer)
	}
	if r.Question != "What color?" || r.CorrectAnswer != "blue" {
		t.Fatal("question/answer snapshot missing")
	}
}

func TestResubmissionUpdatesInPlace(t *testing.T) {
	l := ledger.NewMemoryLedger()
	ctx := context.Background()

	first, err := l.SubmitAnswer(ctx, submitParams("red"))
	if err != nil {
		t.Fatalf("SubmitAnswer err: %v", err)
	}
	if first.AnswerCorrect {
		t.Fatal("red should be wrong")
	}

	second, err := l.SubmitAnswer(ctx, submitParams("Blue"))
	if err != nil {
		t.Fatalf("SubmitAnswer err: %v", err)
	}
	if second.RequestID != first.RequestID {
		t.Fatalf("resubmission created a new record: %s != %s", second.RequestID, first.RequestID)
	}
	if !second.AnswerCorrect {
		t.Fatal("Blue should be correct")
	}

	r, _ := l.Get(ctx, "item-1", "finder")
	if r.Status != models.StatusPending {
		t.Fatalf("status changed on resubmission: %s", r.Status)
	}
}

func TestSubmitAnswerSelfContact(t *testing.T) {
	l := ledger.NewMemoryLedger()
	p := submitParams("blue")
	p.RequesterID = p.OwnerID

	if _, err := l.SubmitAnswer(context.Background(), p); !errors.Is(err, ledger.ErrSelfContact) {
		t.Fatalf("err = %v, want ErrSelfContact", err)
	}
	if _, err := l.Get(context.Background(), p.ItemID, p.RequesterID); !errors.Is(err, ledger.ErrNotFound) {
		t.Fatal("self-contact must not create a record")
	}
}

func TestSubmitAnswerVerificationNotConfigured(t *testing.T) {
	l := ledger.NewMemoryLedger()
	p := submitParams("blue")
	p.Question, p.CorrectAnswer = "", ""

	if _, err := l.SubmitAnswer(context.Background(), p); !errors.Is(err, ledger.ErrVerificationNotConfigured) {
		t.Fatalf("err = %v, want ErrVerificationNotConfigured", err)
	}
}

func TestConcurrentSubmissionsSingleRecord(t *testing.T) {
	l := ledger.NewMemoryLedger()
	ctx := context.Background()

	var wg sync.WaitGroup
	ids := make([]string, 20)
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			res, err := l.SubmitAnswer(ctx, submitParams("blue"))
			if err != nil {
				t.Errorf("SubmitAnswer err: %v", err)
				return
			}
			ids[i] = res.RequestID
		}(i)
	}
	wg.Wait()

	for i := 1; i < len(ids); i++ {
		if ids[i] != ids[0] {
			t.Fatalf("concurrent submissions produced different records: %s vs %s", ids[0], ids[i])
		}
	}
}

func TestListApprovableForOwner(t *testing.T) {
	l := ledger.NewMemoryLedger()
	ctx := context.Background()

	wrong := submitParams("red")
	wrong.RequesterID = "other-finder"
	if _, err := l.SubmitAnswer(ctx, wrong); err != nil {
		t.Fatalf("SubmitAnswer err: %v", err)
	}
	res, err := l.SubmitAnswer(ctx, submitParams("blue"))
	if err != nil {
		t.Fatalf("SubmitAnswer err: %v", err)
	}

	rs, err := l.ListApprovableForOwner(ctx, "owner")
	if err != nil {
		t.Fatalf("ListApprovableForOwner err: %v", err)
	}
	if len(rs) != 1 {
		t.Fatalf("got %d approvable records, want 1", len(rs))
	}
	if rs[0].ID != res.RequestID {
		t.Fatal("wrong record listed")
	}
}

func TestApproveIsIdempotent(t *testing.T) {
	l := ledger.NewMemoryLedger()
	ctx := context.Background()

	res, err := l.SubmitAnswer(ctx, submitParams("blue"))
	if err != nil {
		t.Fatalf("SubmitAnswer err: %v", err)
	}

	first, err := l.Approve(ctx, res.RequestID, "chan-1")
	if err != nil {
		t.Fatalf("Approve err: %v", err)
	}
	second, err := l.Approve(ctx, res.RequestID, "chan-2")
	if err != nil {
		t.Fatalf("Approve err: %v", err)
	}

	if first.ChannelID == nil || second.ChannelID == nil {
		t.Fatal("channel id missing after approve")
	}
	if *second.ChannelID != *first.ChannelID {
		t.Fatalf("repeat approve replaced channel: %s -> %s", *first.ChannelID, *second.ChannelID)
	}
	if second.Status != models.StatusApproved {
		t.Fatalf("status = %s, want approved", second.Status)
	}
}

func TestDeclineIdempotentAndKeepsChannel(t *testing.T) {
	l := ledger.NewMemoryLedger()
	ctx := context.Background()

	res, err := l.SubmitAnswer(ctx, submitParams("blue"))
	if err != nil {
		t.Fatalf("SubmitAnswer err: %v", err)
	}
	if _, err := l.Approve(ctx, res.RequestID, "chan-1"); err != nil {
		t.Fatalf("Approve err: %v", err)
	}

	r, err := l.Decline(ctx, res.RequestID)
	if err != nil {
		t.Fatalf("Decline err: %v", err)
	}
	if r.Status != models.StatusDeclined {
		t.Fatalf("status = %s, want declined", r.Status)
	}
	if r.ChannelID == nil || *r.ChannelID != "chan-1" {
		t.Fatal("decline must not touch channel id")
	}

	again, err := l.Decline(ctx, res.RequestID)
	if err != nil {
		t.Fatalf("repeat Decline err: %v", err)
	}
	if again.Status != models.StatusDeclined {
		t.Fatal("repeat decline changed status")
	}
}

func TestDecisionOnMissingRecord(t *testing.T) {
	l := ledger.NewMemoryLedger()
	ctx := context.Background()

	if _, err := l.Approve(ctx, "missing", "chan-1"); !errors.Is(err, ledger.ErrNotFound) {
		t.Fatalf("Approve err = %v, want ErrNotFound", err)
	}
	if _, err := l.Decline(ctx, "missing"); !errors.Is(err, ledger.ErrNotFound) {
		t.Fatalf("Decline err = %v, want ErrNotFound", err)
	}
}
