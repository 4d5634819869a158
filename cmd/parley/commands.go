package main

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/olekukonko/tablewriter"

	"github.com/naveenspark/parley/internal/chat"
	"github.com/naveenspark/parley/pkg/client"
	"github.com/naveenspark/parley/pkg/domain"
)

type roomLister interface {
	ListRooms(ctx context.Context) ([]domain.Room, error)
}

type sessionEnder interface {
	End() error
}

// runRooms prints the caller's rooms, global room first.
func runRooms(ctx context.Context, c roomLister, out io.Writer) error {
	rooms, err := c.ListRooms(ctx)
	if err != nil {
		if client.IsStatus(err, http.StatusUnauthorized) {
			fmt.Fprintln(out, "Not signed in. Set PARLEY_TOKEN or write ~/.parley/token.")
			return nil
		}
		return fmt.Errorf("list rooms: %w", err)
	}
	rooms = chat.EnsureGlobal(rooms, time.Now())

	table := tablewriter.NewWriter(out)
	table.SetHeader([]string{"Name", "Code", "Type", "Members"})
	table.SetAutoWrapText(false)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetCenterSeparator("")
	table.SetColumnSeparator("")
	table.SetRowSeparator("")
	table.SetHeaderLine(false)
	table.SetBorder(false)
	table.SetTablePadding("\t")

	for _, r := range rooms {
		members := strconv.Itoa(len(r.Members))
		if r.MaxMembers > 0 && !r.IsGlobal() {
			members += "/" + strconv.Itoa(r.MaxMembers)
		}
		if r.IsGlobal() {
			members = "-"
		}
		table.Append([]string{r.Name, r.Code, string(r.Type), members})
	}
	table.Render()
	return nil
}

// runLogout ends the anonymous session so the next launch gets a new global username.
func runLogout(s sessionEnder, out io.Writer) error {
	if err := s.End(); err != nil {
		return err
	}
	fmt.Fprintln(out, "Session ended.")
	return nil
}
