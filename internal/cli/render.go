package cli

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/crmdesk/crm-system/internal/core/analytics"
	"github.com/crmdesk/crm-system/internal/core/domain"
)

// Palette resolves display colors against the live registry.
type Palette interface {
	Flags(c *domain.Client) []domain.Flag
	ClientStatusColor(name string) string
	ActionColor(key string) string
}

func money(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

// RenderClients lists clients with their status and active flags.
func RenderClients(p Palette, clients []domain.Client, filter string) string {
	title := fmt.Sprintf("Clients (%d)", len(clients))
	if filter != "" && filter != analytics.CriterionAll {
		title = fmt.Sprintf("Clients matching %q (%d)", filter, len(clients))
	}
	t := NewTable(title, "ID", "Name", "Phone", "Status", "Ordered", "Debt", "Flags")
	t.Empty = "no clients"
	for i := range clients {
		c := &clients[i]
		debt := money(c.Debt)
		if c.InDebt() {
			debt = Swatch(domain.DebtColor, debt)
		}
		t.AddRow(
			c.ID,
			c.FullName(),
			c.Phone,
			Swatch(p.ClientStatusColor(c.ClientStatus), c.ClientStatus),
			fmt.Sprintf("%d / %s", c.SetsOrderedThisMonth, money(c.AmountThisMonth)),
			debt,
			activeFlags(p.Flags(c)),
		)
	}
	return t.String()
}

func activeFlags(flags []domain.Flag) string {
	parts := make([]string, 0, len(flags))
	for _, f := range flags {
		if !f.Active {
			continue
		}
		label := f.Name
		if f.Legacy {
			label += "*"
		}
		parts = append(parts, Swatch(f.Color, label))
	}
	return strings.Join(parts, " ")
}

// RenderClient prints every field of one client.
func RenderClient(p Palette, c *domain.Client) string {
	var sb strings.Builder
	sb.WriteString(titleStyle.Render(c.FullName()))
	sb.WriteString("\n")
	field := func(name, value string) {
		fmt.Fprintf(&sb, "%-22s %s\n", mutedStyle.Render(name), value)
	}
	field("id", c.ID)
	field("phone", c.Phone)
	field("status", Swatch(p.ClientStatusColor(c.ClientStatus), c.ClientStatus))
	field("crm link", c.CRMLink)
	field("expected", fmt.Sprintf("%d sets / %s", c.ExpectedOrderSets, money(c.ExpectedOrderAmount)))
	field("this month", fmt.Sprintf("%d sets / %s", c.SetsOrderedThisMonth, money(c.AmountThisMonth)))
	field("debt", money(c.Debt))
	field("last contact", c.LastContactDate)
	field("task", c.TaskDescription)
	field("comment", c.Comment)
	sb.WriteString("\n")
	for _, f := range p.Flags(c) {
		mark := "[ ]"
		if f.Active {
			mark = "[x]"
		}
		label := fmt.Sprintf("%s %s (%s)", mark, f.Name, f.Key)
		if f.Legacy {
			label += mutedStyle.Render(" legacy")
		}
		sb.WriteString(Swatch(f.Color, label))
		sb.WriteString("\n")
	}
	return sb.String()
}

// RenderStatistics prints one counter per action key plus the fixed ones.
// Keys are shown in catalog order.
func RenderStatistics(p Palette, s analytics.Statistics, types []domain.ActionStatusType) string {
	t := NewTable("Statistics", "Status", "Clients")
	t.AddRow("Total", strconv.Itoa(s.TotalClients))
	t.AddRow(Swatch(domain.DebtColor, "In debt"), strconv.Itoa(s.HasDebt))

	seen := make(map[string]struct{}, len(types))
	for _, at := range types {
		seen[at.Key] = struct{}{}
		t.AddRow(Swatch(p.ActionColor(at.Key), at.Name), strconv.Itoa(s.Count(at.Key)))
	}
	// counters reported by the server for keys missing locally
	rest := make([]string, 0)
	for k := range s.Actions {
		if _, ok := seen[k]; !ok {
			rest = append(rest, k)
		}
	}
	sort.Strings(rest)
	for _, k := range rest {
		t.AddRow(Swatch(p.ActionColor(k), k), strconv.Itoa(s.Actions[k]))
	}
	return t.String()
}

// RenderSummary prints the totals and the monthly progress bar.
func RenderSummary(s analytics.Summary, pr analytics.Progress) string {
	t := NewTable("Summary", "Metric", "Value")
	t.AddRow("Expected sets", strconv.Itoa(s.TotalExpectedSets))
	t.AddRow("Expected amount", money(s.TotalExpectedAmount))
	t.AddRow("Ordered sets", strconv.Itoa(s.TotalOrderedSets))
	t.AddRow("Ordered amount", money(s.TotalOrderedAmount))
	t.AddRow("Total debt", money(s.TotalDebt))
	return t.String() + "\nProgress " + ProgressBar(pr.Percent, 30) + "\n"
}

func RenderClientStatusTypes(types []domain.ClientStatusType) string {
	t := NewTable("Client status types", "ID", "Name", "Color")
	t.Empty = "no client status types"
	for _, st := range types {
		t.AddRow(st.ID, st.Name, Swatch(st.Color, st.Color))
	}
	return t.String()
}

func RenderActionStatusTypes(types []domain.ActionStatusType) string {
	t := NewTable("Action status types", "ID", "Key", "Name", "Color")
	t.Empty = "no action status types"
	for _, at := range types {
		color := domain.ResolveActionColor(at.Key, types)
		t.AddRow(at.ID, at.Key, at.Name, Swatch(color, color))
	}
	return t.String()
}

func RenderReports(reports []domain.DailyReport) string {
	t := NewTable("Daily reports", "ID", "Date", "Orders", "Sets", "Amount", "Received", "Calls", "Chats", "No order")
	t.Empty = "no reports"
	for _, r := range reports {
		t.AddRow(
			r.ID,
			r.Date,
			strconv.Itoa(r.OrdersInAssembly),
			strconv.Itoa(r.SetsCount),
			money(r.OrdersAmount),
			money(r.MoneyReceivedToday),
			fmt.Sprintf("%d/%d", r.SuccessfulCalls, r.CallAttempts),
			strconv.Itoa(r.ChatsToday),
			strconv.Itoa(r.ClientsNoOrder),
		)
	}
	return t.String()
}

func RenderIdentity(id domain.Identity) string {
	return fmt.Sprintf("%s <%s>", id.DisplayName, id.Email)
}

// RenderError formats a failure for stderr.
func RenderError(err error) string {
	return errorStyle.Render("error:") + " " + err.Error()
}
