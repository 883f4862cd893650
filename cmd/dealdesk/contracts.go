package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"dealdesk/cmd/dealdesk/ui"
	"dealdesk/internal/api"
	"dealdesk/internal/contract"
)

var contractsCmd = &cobra.Command{
	Use:   "contracts",
	Short: "List and manage contracts",
}

// listFlags maps one-to-one onto the client-side filter.
var listFlags struct {
	status    string
	ctype     string
	minBudget string
	maxBudget string
	from      string
	to        string
	creator   string
	brand     string
	search    string
}

var contractsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List contracts with client-side filters",
	Long: `Fetches the full contract list once and applies all filters locally.
Budget bounds are inclusive; id and free-text matches are case-insensitive
substrings. When the backend is unreachable the list renders as an empty
state instead of failing.`,
	RunE: runContractsList,
}

var contractsShowCmd = &cobra.Command{
	Use:   "show [id]",
	Short: "Show one contract with its sub-resources",
	Args:  cobra.ExactArgs(1),
	RunE:  runContractsShow,
}

// formFlags collects the create/edit form input.
var formFlags struct {
	creator      string
	brand        string
	title        string
	ctype        string
	budget       string
	start        string
	end          string
	status       string
	terms        string
	paymentTerms string
	deliverables string
	legal        string
	jurisdiction string
	dispute      string
	customLaw    string
}

var contractsCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a contract",
	Long: `Creates a contract from flat fields plus four nested JSON groups
(--terms, --payment-terms, --deliverables, --legal). Empty-string entries are
stripped from each group and empty groups are omitted from the payload.
Selecting --jurisdiction fills the legal group with the canned applicable-laws
text; "custom" requires --custom-law.`,
	RunE: runContractsCreate,
}

var contractsEditCmd = &cobra.Command{
	Use:   "edit [id]",
	Short: "Replace the mutable fields of a contract",
	Args:  cobra.ExactArgs(1),
	RunE:  runContractsEdit,
}

// updateFlags maps onto the tabbed partial-update editor.
var updateFlags struct {
	status string
	budget string
	note   string
	start  string
	end    string
}

var contractsUpdateCmd = &cobra.Command{
	Use:   "update [id]",
	Short: "Post a partial update event",
	Long: `Posts a single update event covering the status/budget/deliverable/
timeline fields that were provided. At least one field is required; the
backend interprets the patch.`,
	Args: cobra.ExactArgs(1),
	RunE: runContractsUpdate,
}

var deleteYes bool

var contractsDeleteCmd = &cobra.Command{
	Use:   "delete [id]",
	Short: "Delete a contract",
	Args:  cobra.ExactArgs(1),
	RunE:  runContractsDelete,
}

var contractsAnalyticsCmd = &cobra.Command{
	Use:   "analytics [id]",
	Short: "Show the backend rollup for a contract",
	Args:  cobra.ExactArgs(1),
	RunE:  runContractsAnalytics,
}

func init() {
	f := contractsListCmd.Flags()
	f.StringVar(&listFlags.status, "status", "", "filter by status")
	f.StringVar(&listFlags.ctype, "type", "", "filter by contract type")
	f.StringVar(&listFlags.minBudget, "min-budget", "", "inclusive minimum budget")
	f.StringVar(&listFlags.maxBudget, "max-budget", "", "inclusive maximum budget")
	f.StringVar(&listFlags.from, "from", "", "earliest start date (YYYY-MM-DD)")
	f.StringVar(&listFlags.to, "to", "", "latest start date (YYYY-MM-DD)")
	f.StringVar(&listFlags.creator, "creator", "", "creator id substring")
	f.StringVar(&listFlags.brand, "brand", "", "brand id substring")
	f.StringVar(&listFlags.search, "search", "", "free text across title/creator/brand")

	for _, cmd := range []*cobra.Command{contractsCreateCmd, contractsEditCmd} {
		cf := cmd.Flags()
		cf.StringVar(&formFlags.creator, "creator", "", "creator user id")
		cf.StringVar(&formFlags.brand, "brand", "", "brand user id")
		cf.StringVar(&formFlags.title, "title", "", "contract title")
		cf.StringVar(&formFlags.ctype, "type", "", "contract type (one_time|ongoing|performance_based)")
		cf.StringVar(&formFlags.budget, "budget", "", "budget amount")
		cf.StringVar(&formFlags.start, "start", "", "start date (YYYY-MM-DD)")
		cf.StringVar(&formFlags.end, "end", "", "end date (YYYY-MM-DD)")
		cf.StringVar(&formFlags.status, "status", "", "lifecycle status")
		cf.StringVar(&formFlags.terms, "terms", "", "terms and conditions (JSON object)")
		cf.StringVar(&formFlags.paymentTerms, "payment-terms", "", "payment terms (JSON object)")
		cf.StringVar(&formFlags.deliverables, "deliverables", "", "deliverables (JSON object)")
		cf.StringVar(&formFlags.legal, "legal", "", "legal compliance (JSON object)")
		cf.StringVar(&formFlags.jurisdiction, "jurisdiction", "", "governing jurisdiction key, or custom")
		cf.StringVar(&formFlags.dispute, "dispute", "", "dispute resolution method")
		cf.StringVar(&formFlags.customLaw, "custom-law", "", "governing-law text when --jurisdiction=custom")
	}

	uf := contractsUpdateCmd.Flags()
	uf.StringVar(&updateFlags.status, "status", "", "new status")
	uf.StringVar(&updateFlags.budget, "budget", "", "new budget")
	uf.StringVar(&updateFlags.note, "deliverable-note", "", "deliverable change note")
	uf.StringVar(&updateFlags.start, "start", "", "new start date (YYYY-MM-DD)")
	uf.StringVar(&updateFlags.end, "end", "", "new end date (YYYY-MM-DD)")

	contractsDeleteCmd.Flags().BoolVarP(&deleteYes, "yes", "y", false, "skip confirmation")

	contractsCmd.AddCommand(contractsListCmd)
	contractsCmd.AddCommand(contractsShowCmd)
	contractsCmd.AddCommand(contractsCreateCmd)
	contractsCmd.AddCommand(contractsEditCmd)
	contractsCmd.AddCommand(contractsUpdateCmd)
	contractsCmd.AddCommand(contractsDeleteCmd)
	contractsCmd.AddCommand(contractsAnalyticsCmd)
}

// buildFilter turns the list flags into the client-side filter.
func buildFilter() (contract.Filter, error) {
	f := contract.Filter{
		Status:       contract.Status(listFlags.status),
		ContractType: contract.Type(listFlags.ctype),
		CreatorID:    listFlags.creator,
		BrandID:      listFlags.brand,
		Search:       listFlags.search,
	}
	if listFlags.status != "" && !contract.ValidStatus(f.Status) {
		return f, fmt.Errorf("unknown status %q", listFlags.status)
	}
	if listFlags.ctype != "" && !contract.ValidType(f.ContractType) {
		return f, fmt.Errorf("unknown contract type %q", listFlags.ctype)
	}
	if listFlags.minBudget != "" {
		v, ok := contract.ParseBudget(listFlags.minBudget)
		if !ok {
			return f, fmt.Errorf("invalid --min-budget %q", listFlags.minBudget)
		}
		f.MinBudget = &v
	}
	if listFlags.maxBudget != "" {
		v, ok := contract.ParseBudget(listFlags.maxBudget)
		if !ok {
			return f, fmt.Errorf("invalid --max-budget %q", listFlags.maxBudget)
		}
		f.MaxBudget = &v
	}
	if listFlags.from != "" {
		t, err := parseDate(listFlags.from)
		if err != nil {
			return f, err
		}
		f.StartAfter = &t
	}
	if listFlags.to != "" {
		t, err := parseDate(listFlags.to)
		if err != nil {
			return f, err
		}
		f.StartBefore = &t
	}
	return f, nil
}

func runContractsList(cmd *cobra.Command, args []string) error {
	filter, err := buildFilter()
	if err != nil {
		return err
	}

	styles := ui.StylesFor(cfg.UI.Theme)
	contracts, err := client.ListContracts(cmd.Context(), api.ContractQuery{})
	if err != nil {
		if api.Unavailable(err) {
			// Degrade to an empty state rather than failing.
			fmt.Println(styles.Banner.Render("backend unavailable - showing empty contract list"))
			fmt.Println(styles.Muted.Render("0 contracts, total budget 0"))
			return nil
		}
		return userFacing(err)
	}

	filtered := filter.Apply(contracts)
	table := ui.NewTable("Contracts", []string{"ID", "Title", "Creator", "Brand", "Type", "Status", "Budget", "Start"})
	var totalBudget float64
	for _, c := range filtered {
		budget := ""
		if c.Budget != nil {
			budget = fmt.Sprintf("%.2f", *c.Budget)
			totalBudget += *c.Budget
		}
		start := ""
		if c.StartDate != nil {
			start = c.StartDate.Format("2006-01-02")
		}
		table.AddRow(c.ID, c.Title, c.CreatorID, c.BrandID,
			string(c.ContractType), string(c.Status), budget, start)
	}

	if len(filtered) == 0 {
		fmt.Println(styles.Muted.Render("no contracts match the active filters"))
		return nil
	}
	fmt.Print(table.View(styles))
	fmt.Println(styles.Muted.Render(fmt.Sprintf("%d of %d contracts, total budget %.2f",
		len(filtered), len(contracts), totalBudget)))
	return nil
}

// contractDetail aggregates a contract with its sub-resources.
type contractDetail struct {
	Contract     contract.Contract
	Comments     []contract.Comment
	Milestones   []contract.Milestone
	Deliverables []contract.Deliverable
	Payments     []contract.Payment
}

// fetchDetail loads the contract, then its sub-resources concurrently.
// A failed sub-resource degrades to an empty section instead of failing
// the whole view.
func fetchDetail(ctx context.Context, c *api.Client, id string) (contractDetail, error) {
	detail := contractDetail{}
	var err error
	detail.Contract, err = c.GetContract(ctx, id)
	if err != nil {
		return detail, err
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if list, err := c.ListComments(gctx, id); err == nil {
			detail.Comments = list
		} else {
			logger.Debug("comments unavailable", zap.String("contract", id), zap.Error(err))
		}
		return nil
	})
	g.Go(func() error {
		if list, err := c.ListMilestones(gctx, id); err == nil {
			detail.Milestones = list
		} else {
			logger.Debug("milestones unavailable", zap.String("contract", id), zap.Error(err))
		}
		return nil
	})
	g.Go(func() error {
		if list, err := c.ListDeliverables(gctx, id); err == nil {
			detail.Deliverables = list
		} else {
			logger.Debug("deliverables unavailable", zap.String("contract", id), zap.Error(err))
		}
		return nil
	})
	g.Go(func() error {
		if list, err := c.ListPayments(gctx, id); err == nil {
			detail.Payments = list
		} else {
			logger.Debug("payments unavailable", zap.String("contract", id), zap.Error(err))
		}
		return nil
	})
	_ = g.Wait()
	return detail, nil
}

func runContractsShow(cmd *cobra.Command, args []string) error {
	styles := ui.StylesFor(cfg.UI.Theme)
	detail, err := fetchDetail(cmd.Context(), client, args[0])
	if err != nil {
		if api.Unavailable(err) {
			fmt.Println(styles.Banner.Render("backend unavailable"))
			return nil
		}
		return err
	}

	c := detail.Contract
	fmt.Println(styles.Title.Render(titleOrID(c)))
	fmt.Printf("  creator: %s   brand: %s\n", c.CreatorID, c.BrandID)
	fmt.Printf("  type: %s   status: %s\n", c.ContractType, c.Status)
	if c.Budget != nil {
		fmt.Printf("  budget: %.2f\n", *c.Budget)
	}
	if c.StartDate != nil || c.EndDate != nil {
		fmt.Printf("  period: %s - %s\n", dateOrDash(c.StartDate), dateOrDash(c.EndDate))
	}
	for name, group := range map[string]map[string]any{
		"terms":         c.TermsAndConditions,
		"payment terms": c.PaymentTerms,
		"deliverables":  c.Deliverables,
		"legal":         c.LegalCompliance,
	} {
		if len(group) > 0 {
			data, _ := json.MarshalIndent(group, "  ", "  ")
			fmt.Printf("  %s:\n  %s\n", name, data)
		}
	}

	if len(detail.Milestones) > 0 {
		t := ui.NewTable("Milestones", []string{"ID", "Title", "Amount", "Due", "Status"})
		for _, m := range detail.Milestones {
			amount := ""
			if m.Amount != nil {
				amount = fmt.Sprintf("%.2f", *m.Amount)
			}
			t.AddRow(m.ID, m.Title, amount, dateOrDash(m.DueDate), m.Status)
		}
		fmt.Print(t.View(styles))
	}
	if len(detail.Deliverables) > 0 {
		t := ui.NewTable("Deliverables", []string{"ID", "Platform", "Content", "Qty", "Due", "Status"})
		for _, d := range detail.Deliverables {
			t.AddRow(d.ID, d.Platform, d.ContentType, fmt.Sprintf("%d", d.Quantity), dateOrDash(d.DueDate), d.Status)
		}
		fmt.Print(t.View(styles))
	}
	if len(detail.Payments) > 0 {
		t := ui.NewTable("Payments", []string{"ID", "Amount", "Currency", "Status", "Paid"})
		for _, p := range detail.Payments {
			t.AddRow(p.ID, fmt.Sprintf("%.2f", p.Amount), p.Currency, p.Status, dateOrDash(p.PaidAt))
		}
		fmt.Print(t.View(styles))
	}
	for _, cm := range detail.Comments {
		fmt.Printf("  [%s] %s: %s\n", cm.CreatedAt.Format("2006-01-02 15:04"), cm.Author, cm.Body)
	}
	for _, ev := range c.UpdateHistory {
		data, _ := json.Marshal(ev.Changes)
		fmt.Println(styles.Muted.Render(fmt.Sprintf("  updated %s by %s: %s",
			ev.Timestamp.Format("2006-01-02 15:04"), ev.Actor, data)))
	}
	return nil
}

// buildDraft assembles a contract.Draft from the form flags.
func buildDraft() (contract.Draft, error) {
	d := contract.Draft{
		CreatorID:    formFlags.creator,
		BrandID:      formFlags.brand,
		Title:        formFlags.title,
		ContractType: contract.Type(formFlags.ctype),
		Budget:       formFlags.budget,
		Status:       contract.Status(formFlags.status),
	}
	if d.CreatorID == "" || d.BrandID == "" {
		return d, fmt.Errorf("--creator and --brand are required")
	}
	if !contract.ValidType(d.ContractType) {
		return d, fmt.Errorf("--type must be one of %v", contract.ValidTypes)
	}
	if formFlags.status != "" && !contract.ValidStatus(d.Status) {
		return d, fmt.Errorf("unknown status %q", formFlags.status)
	}
	if formFlags.start != "" {
		t, err := parseDate(formFlags.start)
		if err != nil {
			return d, err
		}
		d.StartDate = &t
	}
	if formFlags.end != "" {
		t, err := parseDate(formFlags.end)
		if err != nil {
			return d, err
		}
		d.EndDate = &t
	}

	var err error
	if d.Terms, err = parseGroup("terms", formFlags.terms); err != nil {
		return d, err
	}
	if d.PaymentTerms, err = parseGroup("payment-terms", formFlags.paymentTerms); err != nil {
		return d, err
	}
	if d.Deliverables, err = parseGroup("deliverables", formFlags.deliverables); err != nil {
		return d, err
	}
	if d.Legal, err = parseGroup("legal", formFlags.legal); err != nil {
		return d, err
	}

	// Jurisdiction selection drives the canned applicable-laws text; the
	// custom variant requires override text.
	if formFlags.jurisdiction != "" {
		if d.Legal == nil {
			d.Legal = map[string]any{}
		}
		d.Legal["jurisdiction"] = formFlags.jurisdiction
		if laws, ok := contract.ApplicableLaws(formFlags.jurisdiction); ok {
			d.Legal["applicable_laws"] = laws
		} else {
			if strings.TrimSpace(formFlags.customLaw) == "" {
				return d, fmt.Errorf("--jurisdiction=%s requires --custom-law", formFlags.jurisdiction)
			}
			d.Legal["applicable_laws"] = formFlags.customLaw
		}
		if formFlags.dispute != "" {
			d.Legal["dispute_resolution"] = formFlags.dispute
		}
	}
	return d, nil
}

func runContractsCreate(cmd *cobra.Command, args []string) error {
	draft, err := buildDraft()
	if err != nil {
		return err
	}
	created, err := client.CreateContract(cmd.Context(), draft.BuildPayload())
	if err != nil {
		return userFacing(err)
	}
	fmt.Printf("created contract %s\n", created.ID)
	return nil
}

func runContractsEdit(cmd *cobra.Command, args []string) error {
	draft, err := buildDraft()
	if err != nil {
		return err
	}
	updated, err := client.UpdateContract(cmd.Context(), args[0], draft.BuildPayload())
	if err != nil {
		return userFacing(err)
	}
	fmt.Printf("updated contract %s\n", updated.ID)
	return nil
}

func runContractsUpdate(cmd *cobra.Command, args []string) error {
	u := contract.Update{
		Status:          contract.Status(updateFlags.status),
		Budget:          updateFlags.budget,
		DeliverableNote: updateFlags.note,
	}
	if updateFlags.status != "" && !contract.ValidStatus(u.Status) {
		return fmt.Errorf("unknown status %q", updateFlags.status)
	}
	if updateFlags.start != "" {
		t, err := parseDate(updateFlags.start)
		if err != nil {
			return err
		}
		u.StartDate = &t
	}
	if updateFlags.end != "" {
		t, err := parseDate(updateFlags.end)
		if err != nil {
			return err
		}
		u.EndDate = &t
	}

	ev, err := u.BuildEvent(args[0], cfg.ActorOrDefault(), time.Now())
	if err != nil {
		return err
	}
	if err := client.PostUpdateEvent(cmd.Context(), ev); err != nil {
		return userFacing(err)
	}
	fmt.Printf("posted update for contract %s (%d changes)\n", args[0], len(ev.Changes))
	return nil
}

func runContractsDelete(cmd *cobra.Command, args []string) error {
	if !deleteYes {
		fmt.Printf("delete contract %s? [y/N] ", args[0])
		var answer string
		fmt.Scanln(&answer)
		if !strings.EqualFold(strings.TrimSpace(answer), "y") {
			fmt.Println("aborted")
			return nil
		}
	}
	if err := client.DeleteContract(cmd.Context(), args[0]); err != nil {
		return userFacing(err)
	}
	fmt.Printf("deleted contract %s\n", args[0])
	return nil
}

func runContractsAnalytics(cmd *cobra.Command, args []string) error {
	styles := ui.StylesFor(cfg.UI.Theme)
	a, err := client.GetAnalytics(cmd.Context(), args[0])
	if err != nil {
		if api.Unavailable(err) {
			fmt.Println(styles.Banner.Render("backend unavailable - no analytics"))
			return nil
		}
		return userFacing(err)
	}
	fmt.Println(styles.Title.Render("Analytics " + a.ContractID))
	fmt.Printf("  total paid: %.2f\n", a.TotalPaid)
	fmt.Printf("  milestones: %d/%d\n", a.MilestonesDone, a.MilestonesTotal)
	if len(a.Extra) > 0 {
		data, _ := json.MarshalIndent(a.Extra, "  ", "  ")
		fmt.Printf("  %s\n", data)
	}
	return nil
}

func parseDate(s string) (time.Time, error) {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, want YYYY-MM-DD", s)
	}
	return t, nil
}

func parseGroup(name, raw string) (map[string]any, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, nil
	}
	var group map[string]any
	if err := json.Unmarshal([]byte(raw), &group); err != nil {
		return nil, fmt.Errorf("--%s must be a JSON object: %w", name, err)
	}
	return group, nil
}

// userFacing converts API errors to their user-facing message while keeping
// transport failures distinguishable.
func userFacing(err error) error {
	var apiErr *api.APIError
	if errors.As(err, &apiErr) {
		return errors.New(apiErr.Message())
	}
	if api.Unavailable(err) {
		return errors.New("backend unavailable, is the contract service running?")
	}
	return err
}

func titleOrID(c contract.Contract) string {
	if c.Title != "" {
		return c.Title
	}
	return "contract " + c.ID
}

func dateOrDash(t *time.Time) string {
	if t == nil {
		return "-"
	}
	return t.Format("2006-01-02")
}
