package main

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"strings"
	"testing"

	"github.com/naveenspark/parley/pkg/client"
	"github.com/naveenspark/parley/pkg/domain"
)

type fakeLister struct {
	rooms []domain.Room
	err   error
}

func (f fakeLister) ListRooms(context.Context) ([]domain.Room, error) {
	return f.rooms, f.err
}

type fakeSession struct {
	ended bool
	err   error
}

func (f *fakeSession) End() error {
	f.ended = true
	return f.err
}

func TestRunVersion(t *testing.T) {
	var out bytes.Buffer
	if err := run([]string{"--version"}, &out); err != nil {
		t.Fatalf("run: %v", err)
	}
	if got := out.String(); got != "parley dev\n" {
		t.Errorf("output = %q", got)
	}
}

func TestRunHelp(t *testing.T) {
	var out bytes.Buffer
	if err := run([]string{"help"}, &out); err != nil {
		t.Fatalf("run: %v", err)
	}
	for _, want := range []string{"parley rooms", "parley logout", "PARLEY_API_URL"} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("help missing %q", want)
		}
	}
}

func TestRunUnknownCommand(t *testing.T) {
	var out bytes.Buffer
	err := run([]string{"frobnicate"}, &out)
	if err == nil || !strings.Contains(err.Error(), "frobnicate") {
		t.Errorf("err = %v, want unknown command", err)
	}
}

func TestRunRooms(t *testing.T) {
	var out bytes.Buffer
	lister := fakeLister{rooms: []domain.Room{{
		ID: "r1", Name: "book club", Code: "BOOKS", Type: domain.RoomTypePrivate,
		Members: []string{"u1", "u2"}, MaxMembers: domain.PrivateMaxMembers,
	}}}

	if err := runRooms(context.Background(), lister, &out); err != nil {
		t.Fatalf("runRooms: %v", err)
	}

	got := out.String()
	for _, want := range []string{"Global Chat", "GLOBAL", "book club", "BOOKS", "2/5"} {
		if !strings.Contains(got, want) {
			t.Errorf("output missing %q:\n%s", want, got)
		}
	}
	if strings.Index(got, "Global Chat") > strings.Index(got, "book club") {
		t.Error("global room should be listed first")
	}
}

func TestRunRoomsUnauthorized(t *testing.T) {
	var out bytes.Buffer
	lister := fakeLister{err: &client.HTTPError{StatusCode: http.StatusUnauthorized}}

	if err := runRooms(context.Background(), lister, &out); err != nil {
		t.Fatalf("runRooms: %v", err)
	}
	if !strings.Contains(out.String(), "Not signed in") {
		t.Errorf("output = %q", out.String())
	}
}

func TestRunRoomsError(t *testing.T) {
	err := runRooms(context.Background(), fakeLister{err: errors.New("refused")}, &bytes.Buffer{})
	if err == nil || !strings.Contains(err.Error(), "list rooms") {
		t.Errorf("err = %v", err)
	}
}

func TestRunLogout(t *testing.T) {
	var out bytes.Buffer
	s := &fakeSession{}

	if err := runLogout(s, &out); err != nil {
		t.Fatalf("runLogout: %v", err)
	}
	if !s.ended {
		t.Error("session not ended")
	}
	if !strings.Contains(out.String(), "Session ended") {
		t.Errorf("output = %q", out.String())
	}

	if err := runLogout(&fakeSession{err: errors.New("locked")}, &out); err == nil {
		t.Error("expected error from failing store")
	}
}
