package workspace

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/rs/zerolog"

	"github.com/crmdesk/crm-system/internal/core/domain"
	"github.com/crmdesk/crm-system/internal/core/ports"
	"github.com/crmdesk/crm-system/internal/remote"
	"github.com/crmdesk/crm-system/internal/session"
)

func seeded() *fakeBackend {
	f := newFakeBackend()
	f.actionTypes = []domain.ActionStatusType{
		{ID: "a1", Name: "Made an order", Key: "made_order", Color: "#22C55E"},
		{ID: "a2", Name: "Needs a callback", Key: "need_callback", Color: "#F59E0B"},
	}
	f.statusTypes = []domain.ClientStatusType{
		{ID: "s1", Name: "New", Color: "#111111"},
		{ID: "s2", Name: "VIP", Color: "#222222"},
	}
	f.clients = []domain.Client{
		{ID: "c1", FirstName: "Ann", ClientStatus: "New", Debt: 50, ExpectedOrderAmount: 100, AmountThisMonth: 40,
			ActionStatus: domain.ActionStatusBitmap{"made_order": true, "need_callback": false}},
		{ID: "c2", FirstName: "Bob", ClientStatus: "VIP", ExpectedOrderAmount: 100, AmountThisMonth: 60,
			ActionStatus: domain.ActionStatusBitmap{"made_order": false, "need_callback": true}},
		{ID: "c3", FirstName: "Cid", ClientStatus: "New",
			ActionStatus: domain.ActionStatusBitmap{"made_order": true, "need_callback": true}},
	}
	return f
}

func newWorkspace(t *testing.T, f *fakeBackend) *Workspace {
	t.Helper()
	return New(gate{token: "tok"}, f.dialer(), zerolog.Nop())
}

func ids(clients []domain.Client) []string {
	out := make([]string, 0, len(clients))
	for _, c := range clients {
		out = append(out, c.ID)
	}
	return out
}

func TestAnonymousRejectedBeforeNetwork(t *testing.T) {
	f := seeded()
	w := New(gate{}, f.dialer(), zerolog.Nop())
	ctx := context.Background()

	ops := map[string]func() error{
		"Load":    func() error { return w.Load(ctx) },
		"Clients": func() error { _, err := w.Clients(ctx); return err },
		"Stats":   func() error { _, err := w.Statistics(ctx); return err },
		"Summary": func() error { _, err := w.Summary(ctx); return err },
		"Create": func() error {
			_, err := w.CreateClient(ctx, ports.ClientInput{FirstName: "X", LastName: "Y", ClientStatus: "New"})
			return err
		},
		"Delete":       func() error { return w.DeleteClient(ctx, "c1") },
		"Comment":      func() error { return w.UpdateComment(ctx, "c1", "hi") },
		"Upsert":       func() error { _, err := w.UpsertActionStatusType(ctx, "Call", "call", ""); return err },
		"StatusTypes":  func() error { _, err := w.ClientStatusTypes(ctx); return err },
		"Reports":      func() error { _, err := w.Reports(ctx); return err },
		"ServerStats":  func() error { _, err := w.ServerStatistics(ctx); return err },
		"DeleteStatus": func() error { return w.DeleteClientStatusType(ctx, "s1") },
	}
	for name, op := range ops {
		if err := op(); !errors.Is(err, domain.ErrUnauthenticated) {
			t.Fatalf("%s: expected auth rejection, got %v", name, err)
		}
	}
	if len(f.tokens) != 0 || len(f.calls) != 0 {
		t.Fatalf("no backend call expected, got %v", f.calls)
	}
}

func TestLoad_FetchesAllThreeReads(t *testing.T) {
	f := seeded()
	w := newWorkspace(t, f)
	if err := w.Load(context.Background()); err != nil {
		t.Fatalf("load: %v", err)
	}
	for _, op := range []string{"ListClients", "ListClientStatusTypes", "ListActionStatusTypes"} {
		if f.count(op) != 1 {
			t.Fatalf("expected one %s call, got %d", op, f.count(op))
		}
	}
	clients, _ := w.Clients(context.Background())
	if diff := cmp.Diff([]string{"c1", "c2", "c3"}, ids(clients)); diff != "" {
		t.Fatalf("clients mismatch (-want +got):\n%s", diff)
	}
}

func TestFilterBy(t *testing.T) {
	w := newWorkspace(t, seeded())
	ctx := context.Background()

	cases := []struct {
		criterion string
		want      []string
	}{
		{"", []string{"c1", "c2", "c3"}},
		{"all", []string{"c1", "c2", "c3"}},
		{"made_order", []string{"c1", "c3"}},
		{"need_callback", []string{"c2", "c3"}},
		{"has_debt", []string{"c1"}},
		{"VIP", []string{"c2"}},
		{"Nobody", []string{}},
	}
	for _, tc := range cases {
		got, err := w.FilterBy(ctx, tc.criterion)
		if err != nil {
			t.Fatalf("%q: %v", tc.criterion, err)
		}
		if diff := cmp.Diff(tc.want, ids(got)); diff != "" {
			t.Fatalf("%q mismatch (-want +got):\n%s", tc.criterion, diff)
		}
	}
}

func TestSetFilter_SingleCriterion(t *testing.T) {
	w := newWorkspace(t, seeded())
	ctx := context.Background()

	w.SetFilter("made_order")
	w.SetFilter("has_debt")
	got, _ := w.Visible(ctx)
	if diff := cmp.Diff([]string{"c1"}, ids(got)); diff != "" {
		t.Fatalf("only the latest criterion applies (-want +got):\n%s", diff)
	}
	w.SetFilter("all")
	if got, _ := w.Visible(ctx); len(got) != 3 {
		t.Fatalf("all must show every client, got %d", len(got))
	}
}

func TestStatisticsAndSummary(t *testing.T) {
	w := newWorkspace(t, seeded())
	ctx := context.Background()

	s, err := w.Statistics(ctx)
	if err != nil {
		t.Fatalf("statistics: %v", err)
	}
	if s.TotalClients != 3 || s.HasDebt != 1 || s.Count("made_order") != 2 || s.Count("need_callback") != 2 {
		t.Fatalf("unexpected statistics %+v", s)
	}

	w.SetFilter("VIP")
	sum, _ := w.Summary(ctx)
	if sum.TotalExpectedAmount != 200 || sum.TotalOrderedAmount != 100 || sum.TotalDebt != 50 {
		t.Fatalf("summary must ignore the filter, got %+v", sum)
	}
	p, _ := w.Progress(ctx)
	if p.Ratio != 0.5 || p.Percent != 50 {
		t.Fatalf("unexpected progress %+v", p)
	}
}

func TestMutationsRecomputeAggregates(t *testing.T) {
	f := seeded()
	w := newWorkspace(t, f)
	ctx := context.Background()

	if s, _ := w.Statistics(ctx); s.Count("made_order") != 2 {
		t.Fatalf("precondition failed: %+v", s)
	}

	if _, err := w.SetActionFlags(ctx, "c2", domain.ActionStatusBitmap{"made_order": true}); err != nil {
		t.Fatalf("set flags: %v", err)
	}
	if s, _ := w.Statistics(ctx); s.Count("made_order") != 3 || s.Count("need_callback") != 2 {
		t.Fatalf("flag change not reflected: %+v", s)
	}

	created, err := w.CreateClient(ctx, ports.ClientInput{FirstName: "Dee", LastName: "E", ClientStatus: "New", Debt: 5})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if s, _ := w.Statistics(ctx); s.TotalClients != 4 || s.HasDebt != 2 {
		t.Fatalf("create not reflected: %+v", s)
	}

	zero := 0.0
	if _, err := w.UpdateClient(ctx, created.ID, ports.ClientPatch{Debt: &zero}); err != nil {
		t.Fatalf("update: %v", err)
	}
	if sum, _ := w.Summary(ctx); sum.TotalDebt != 50 {
		t.Fatalf("update not reflected: %+v", sum)
	}

	if err := w.DeleteClient(ctx, "c1"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	s, _ := w.Statistics(ctx)
	if s.TotalClients != 3 || s.HasDebt != 0 {
		t.Fatalf("delete not reflected: %+v", s)
	}
}

func TestUpdateComment_OnlyTouchesComment(t *testing.T) {
	w := newWorkspace(t, seeded())
	ctx := context.Background()

	before, _ := w.Client(ctx, "c2")
	if err := w.UpdateComment(ctx, "c2", "call back Monday"); err != nil {
		t.Fatalf("comment: %v", err)
	}
	after, _ := w.Client(ctx, "c2")
	before.Comment = "call back Monday"
	if diff := cmp.Diff(before, after); diff != "" {
		t.Fatalf("only the comment should change (-want +got):\n%s", diff)
	}
}

func TestToggleActionFlag(t *testing.T) {
	w := newWorkspace(t, seeded())
	ctx := context.Background()

	c, err := w.ToggleActionFlag(ctx, "c1", "made_order")
	if err != nil {
		t.Fatalf("toggle: %v", err)
	}
	if c.ActionStatus.Has("made_order") || c.ActionStatus["need_callback"] {
		t.Fatalf("unexpected bitmap %v", c.ActionStatus)
	}
}

func TestFailedMutationLeavesStateUntouched(t *testing.T) {
	f := seeded()
	w := newWorkspace(t, f)
	ctx := context.Background()

	before, _ := w.Clients(ctx)
	stats, _ := w.Statistics(ctx)

	f.failNext = &remote.Error{Kind: remote.KindServer, Status: 500, Message: "internal server error"}
	if err := w.DeleteClient(ctx, "c1"); err == nil {
		t.Fatalf("expected failure")
	}

	after, _ := w.Clients(ctx)
	if diff := cmp.Diff(before, after); diff != "" {
		t.Fatalf("clients changed after failure (-before +after):\n%s", diff)
	}
	if s, _ := w.Statistics(ctx); !cmp.Equal(stats, s) {
		t.Fatalf("statistics changed after failure")
	}
}

func TestNotFoundTriggersRefresh(t *testing.T) {
	f := seeded()
	w := newWorkspace(t, f)
	ctx := context.Background()
	if err := w.Load(ctx); err != nil {
		t.Fatalf("load: %v", err)
	}

	// another operator deleted c2
	f.mu.Lock()
	f.clients = append(f.clients[:1], f.clients[2:]...)
	f.mu.Unlock()

	err := w.UpdateComment(ctx, "c2", "hello")
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
	if f.count("ListClients") != 2 {
		t.Fatalf("expected a refresh, got %d loads", f.count("ListClients"))
	}
	clients, _ := w.Clients(ctx)
	if diff := cmp.Diff([]string{"c1", "c3"}, ids(clients)); diff != "" {
		t.Fatalf("refresh not applied (-want +got):\n%s", diff)
	}
}

func TestUpsertActionStatusType(t *testing.T) {
	f := seeded()
	w := newWorkspace(t, f)
	ctx := context.Background()

	updated, err := w.UpsertActionStatusType(ctx, "Ordered", "made_order", "#000000")
	if err != nil {
		t.Fatalf("upsert existing: %v", err)
	}
	if updated.ID != "a1" || f.count("UpdateActionStatusType") != 1 || f.count("CreateActionStatusType") != 0 {
		t.Fatalf("existing key must be updated in place, got %+v", updated)
	}
	if got := w.ActionColor("made_order"); got != "#000000" {
		t.Fatalf("registry color must win, got %s", got)
	}

	created, err := w.UpsertActionStatusType(ctx, "Sent catalog", "sent_catalog", "")
	if err != nil {
		t.Fatalf("upsert new: %v", err)
	}
	if created.Key != "sent_catalog" || f.count("CreateActionStatusType") != 1 {
		t.Fatalf("new key must be created, got %+v", created)
	}
	s, _ := w.Statistics(ctx)
	if v, ok := s.Actions["sent_catalog"]; !ok || v != 0 {
		t.Fatalf("registry change must invalidate statistics, got %+v", s)
	}
}

func TestUpsertClientStatusType(t *testing.T) {
	f := seeded()
	w := newWorkspace(t, f)
	ctx := context.Background()

	if _, err := w.UpsertClientStatusType(ctx, "VIP", "#ABCDEF"); err != nil {
		t.Fatalf("upsert: %v", err)
	}
	if f.count("UpdateClientStatusType") != 1 {
		t.Fatalf("existing name must be updated")
	}
	if got := w.ClientStatusColor("VIP"); got != "#ABCDEF" {
		t.Fatalf("unexpected color %s", got)
	}
	if _, err := w.UpsertClientStatusType(ctx, "Lost", ""); err != nil {
		t.Fatalf("upsert new: %v", err)
	}
	types, _ := w.ClientStatusTypes(ctx)
	if len(types) != 3 {
		t.Fatalf("expected 3 types, got %d", len(types))
	}
}

func TestDeleteActionStatusType_KeysBecomeLegacy(t *testing.T) {
	f := seeded()
	w := newWorkspace(t, f)
	ctx := context.Background()

	if err := w.DeleteActionStatusType(ctx, "a2"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	c, _ := w.Client(ctx, "c2")
	flags := w.Flags(c)
	last := flags[len(flags)-1]
	if last.Key != "need_callback" || !last.Legacy || !last.Active {
		t.Fatalf("expected need_callback as an active legacy flag, got %+v", last)
	}
	if last.Color != "#F59E0B" {
		t.Fatalf("deleted well-known key must fall back to the palette, got %s", last.Color)
	}
	s, _ := w.Statistics(ctx)
	if _, ok := s.Actions["need_callback"]; ok {
		t.Fatalf("deleted type must not be counted")
	}
	if got, _ := w.FilterBy(ctx, "need_callback"); len(got) != 2 {
		t.Fatalf("well-known keys stay filterable, got %d", len(got))
	}
}

func TestDeleteClientStatusType_DanglingColor(t *testing.T) {
	w := newWorkspace(t, seeded())
	ctx := context.Background()

	if err := w.DeleteClientStatusType(ctx, "s2"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if got := w.ClientStatusColor("VIP"); got != domain.DefaultClientStatusColor {
		t.Fatalf("dangling status must use the default color, got %s", got)
	}
	c, _ := w.Client(ctx, "c2")
	if c.ClientStatus != "VIP" {
		t.Fatalf("deletion must not cascade to clients")
	}
}

func TestReports(t *testing.T) {
	f := seeded()
	w := newWorkspace(t, f)
	ctx := context.Background()

	if _, err := w.CreateReport(ctx, ports.ReportInput{Date: "2024-05-01"}); err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := w.CreateReport(ctx, ports.ReportInput{Date: "2024-05-01"}); !errors.Is(err, domain.ErrConflict) {
		t.Fatalf("expected conflict, got %v", err)
	}
	reports, err := w.Reports(ctx)
	if err != nil || len(reports) != 1 {
		t.Fatalf("unexpected reports %v %v", reports, err)
	}
}

func TestWithSession_LogoutBlocksFurtherCalls(t *testing.T) {
	f := seeded()
	auth := &sessionAuth{}
	sess, err := session.New(&session.MemoryStore{}, auth, zerolog.Nop())
	if err != nil {
		t.Fatalf("session: %v", err)
	}
	w := New(sess, f.dialer(), zerolog.Nop())
	ctx := context.Background()

	if _, err := sess.Login(ctx, "ann@example.com", "secret1"); err != nil {
		t.Fatalf("login: %v", err)
	}
	if _, err := w.Clients(ctx); err != nil {
		t.Fatalf("clients: %v", err)
	}
	if f.tokens[0] != "tok" {
		t.Fatalf("backend must receive the session token, got %q", f.tokens[0])
	}

	sess.Logout(ctx)
	calls := len(f.tokens)
	if _, err := w.Clients(ctx); !errors.Is(err, domain.ErrUnauthenticated) {
		t.Fatalf("expected rejection after logout, got %v", err)
	}
	if len(f.tokens) != calls {
		t.Fatalf("no backend call expected after logout")
	}
}

func TestWithSession_RejectedTokenEndsSession(t *testing.T) {
	f := seeded()
	store := &session.MemoryStore{}
	sess, err := session.New(store, &sessionAuth{}, zerolog.Nop())
	if err != nil {
		t.Fatalf("session: %v", err)
	}
	w := New(sess, f.dialer(), zerolog.Nop())
	ctx := context.Background()

	if _, err := sess.Login(ctx, "ann@example.com", "secret1"); err != nil {
		t.Fatalf("login: %v", err)
	}
	if err := w.Load(ctx); err != nil {
		t.Fatalf("load: %v", err)
	}

	// Other failures keep the session.
	f.failNext = &remote.Error{Kind: remote.KindConflict, Status: 409, Message: "duplicate"}
	if _, err := w.CreateClient(ctx, ports.ClientInput{FirstName: "Dee", ClientStatus: "New"}); !errors.Is(err, domain.ErrConflict) {
		t.Fatalf("expected conflict, got %v", err)
	}
	if sess.State() != session.Authenticated {
		t.Fatalf("conflict must not end the session, state %v", sess.State())
	}

	f.failNext = &remote.Error{Kind: remote.KindAuth, Status: 401, Message: "token revoked"}
	if _, err := w.CreateClient(ctx, ports.ClientInput{FirstName: "Dee", ClientStatus: "New"}); !errors.Is(err, domain.ErrUnauthenticated) {
		t.Fatalf("expected unauthenticated, got %v", err)
	}
	if sess.State() != session.Anonymous {
		t.Fatalf("expected anonymous after rejection, got %v", sess.State())
	}
	if tok, _ := store.Load(); tok != "" {
		t.Fatalf("persisted token must be cleared, got %q", tok)
	}
	calls := len(f.tokens)
	if _, err := w.Reports(ctx); !errors.Is(err, domain.ErrUnauthenticated) {
		t.Fatalf("expected rejection, got %v", err)
	}
	if len(f.tokens) != calls {
		t.Fatalf("no backend call expected after rejection")
	}
}

func TestWithSession_RejectedReportCallEndsSession(t *testing.T) {
	f := seeded()
	sess, err := session.New(&session.MemoryStore{}, &sessionAuth{}, zerolog.Nop())
	if err != nil {
		t.Fatalf("session: %v", err)
	}
	w := New(sess, f.dialer(), zerolog.Nop())
	ctx := context.Background()
	if _, err := sess.Login(ctx, "ann@example.com", "secret1"); err != nil {
		t.Fatalf("login: %v", err)
	}

	f.failNext = &remote.Error{Kind: remote.KindAuth, Status: 401, Message: "token expired"}
	if err := w.DeleteReport(ctx, "r1"); !errors.Is(err, domain.ErrUnauthenticated) {
		t.Fatalf("expected unauthenticated, got %v", err)
	}
	if _, ok := sess.Identity(); ok {
		t.Fatalf("identity must be gone after rejection")
	}
}

type sessionAuth struct{}

func (sessionAuth) Login(context.Context, string, string) (*remote.TokenResponse, error) {
	return &remote.TokenResponse{AccessToken: "tok", User: domain.User{ID: "u1", Email: "ann@example.com"}}, nil
}

func (sessionAuth) Register(context.Context, string, string, string) (*remote.TokenResponse, error) {
	return nil, errors.New("unused")
}

func (sessionAuth) CurrentUser(context.Context, string) (*domain.User, error) {
	return nil, errors.New("unused")
}

func (sessionAuth) Revoke(context.Context, string) error { return nil }
