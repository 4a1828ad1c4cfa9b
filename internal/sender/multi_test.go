package sender

import (
	"context"
	"errors"
	"testing"
)

type recordingSender struct {
	name    string
	sendErr error
	sent    int
	log     *[]string
}

func (r *recordingSender) Send(context.Context, *Report) error {
	r.sent++
	return r.sendErr
}

func (r *recordingSender) Close() error {
	*r.log = append(*r.log, r.name)
	return nil
}

func TestMulti_SendContinuesPastFailure(t *testing.T) {
	var closed []string
	boom := errors.New("boom")
	a := &recordingSender{name: "a", sendErr: boom, log: &closed}
	b := &recordingSender{name: "b", log: &closed}

	m := NewMulti(a, nil, b)
	if m.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", m.Len())
	}

	err := m.Send(context.Background(), testReport())
	if !errors.Is(err, boom) {
		t.Errorf("expected joined error to wrap boom, got %v", err)
	}
	if a.sent != 1 || b.sent != 1 {
		t.Errorf("sent counts a=%d b=%d, want 1 each", a.sent, b.sent)
	}

	if err := m.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}
	if len(closed) != 2 || closed[0] != "b" || closed[1] != "a" {
		t.Errorf("close order = %v, want [b a]", closed)
	}
}

func TestMulti_Empty(t *testing.T) {
	m := NewMulti()
	if err := m.Send(context.Background(), testReport()); err != nil {
		t.Errorf("empty Multi Send returned %v", err)
	}
	if err := m.Close(); err != nil {
		t.Errorf("empty Multi Close returned %v", err)
	}
}

func TestLatest(t *testing.T) {
	l := NewLatest()
	if l.Get() != nil {
		t.Fatal("expected nil before first Send")
	}
	r := testReport()
	if err := l.Send(context.Background(), r); err != nil {
		t.Fatalf("Send failed: %v", err)
	}
	if l.Get() != r {
		t.Error("Get did not return the last report")
	}
}
