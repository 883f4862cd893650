// This file implements the smart contract generator wizard using bubbletea.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"dealdesk/cmd/dealdesk/ui"
	"dealdesk/internal/api"
	"dealdesk/internal/contract"
	"dealdesk/internal/wizard"
)

var generateFlags struct {
	noInput bool
	create  bool

	creator      string
	brand        string
	title        string
	ctype        string
	platform     string
	contentType  string
	requirements string
	minBudget    string
	maxBudget    string
	start        string
	end          string
	jurisdiction string
	dispute      string
	customLaw    string
	customDisp   string
}

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Run the smart contract generator wizard",
	Long: `Runs the four-step generator: basic info, content requirements,
pricing, result. The final generation is guarded by the full validation rule
set (distinct creator/brand, positive min < max budgets, jurisdiction and
dispute fields). With --no-input the draft comes entirely from flags.`,
	RunE: runGenerate,
}

var pricingFlags struct {
	creator string
	brand   string
	ctype   string
}

var pricingCmd = &cobra.Command{
	Use:   "pricing",
	Short: "Fetch an AI pricing recommendation",
	Long: `Fetches the recommended price for a creator/brand pairing and prints
the -30%/+30% budget band the wizard would apply.`,
	RunE: runPricing,
}

func init() {
	f := generateCmd.Flags()
	f.BoolVar(&generateFlags.noInput, "no-input", false, "run non-interactively from flags")
	f.BoolVar(&generateFlags.create, "create", false, "create the contract from the generated draft")
	f.StringVar(&generateFlags.creator, "creator", "", "creator user id")
	f.StringVar(&generateFlags.brand, "brand", "", "brand user id")
	f.StringVar(&generateFlags.title, "title", "", "working title")
	f.StringVar(&generateFlags.ctype, "type", "", "contract type")
	f.StringVar(&generateFlags.platform, "platform", "", "target platform")
	f.StringVar(&generateFlags.contentType, "content-type", "", "content type")
	f.StringVar(&generateFlags.requirements, "requirements", "", "free-form requirements")
	f.StringVar(&generateFlags.minBudget, "min-budget", "", "minimum budget")
	f.StringVar(&generateFlags.maxBudget, "max-budget", "", "maximum budget")
	f.StringVar(&generateFlags.start, "start", "", "start date (YYYY-MM-DD)")
	f.StringVar(&generateFlags.end, "end", "", "end date (YYYY-MM-DD)")
	f.StringVar(&generateFlags.jurisdiction, "jurisdiction", "", "jurisdiction key or custom")
	f.StringVar(&generateFlags.dispute, "dispute", "", "dispute resolution method")
	f.StringVar(&generateFlags.customLaw, "custom-law", "", "governing-law text for custom jurisdiction")
	f.StringVar(&generateFlags.customDisp, "custom-dispute", "", "description for custom dispute resolution")

	pf := pricingCmd.Flags()
	pf.StringVar(&pricingFlags.creator, "creator", "", "creator user id")
	pf.StringVar(&pricingFlags.brand, "brand", "", "brand user id")
	pf.StringVar(&pricingFlags.ctype, "type", "", "contract type")
}

func draftFromFlags() wizard.Draft {
	return wizard.Draft{
		CreatorID:         generateFlags.creator,
		BrandID:           generateFlags.brand,
		Title:             generateFlags.title,
		ContractType:      contract.Type(generateFlags.ctype),
		Platform:          generateFlags.platform,
		ContentType:       generateFlags.contentType,
		Requirements:      generateFlags.requirements,
		MinBudget:         generateFlags.minBudget,
		MaxBudget:         generateFlags.maxBudget,
		StartDate:         generateFlags.start,
		EndDate:           generateFlags.end,
		Jurisdiction:      generateFlags.jurisdiction,
		DisputeResolution: generateFlags.dispute,
		CustomLawText:     generateFlags.customLaw,
		CustomDisputeText: generateFlags.customDisp,
	}
}

func runGenerate(cmd *cobra.Command, args []string) error {
	if generateFlags.noInput {
		return runGenerateOnce(cmd.Context())
	}
	m := newWizardModel(client)
	m.machine.Draft = draftFromFlags()
	p := tea.NewProgram(m, tea.WithAltScreen())
	_, err := p.Run()
	return err
}

// runGenerateOnce drives the machine through all steps from flags, for
// scripting and tests.
func runGenerateOnce(ctx context.Context) error {
	machine := wizard.New()
	machine.Draft = draftFromFlags()

	if err := machine.Next(); err != nil { // basic info -> content
		return err
	}
	if err := machine.Next(); err != nil { // content -> pricing
		return err
	}
	if err := machine.ValidateForGeneration(); err != nil {
		return err
	}

	gen, err := client.Generate(ctx, machine.GenerationPayload())
	if err != nil {
		return userFacing(err)
	}
	if err := machine.SetResult(gen); err != nil {
		return err
	}

	printGenerated(gen)
	if generateFlags.create {
		created, err := client.CreateContract(ctx, wizard.CreatePayload(gen))
		if err != nil {
			return userFacing(err)
		}
		fmt.Printf("created contract %s from draft\n", created.ID)
	}
	return nil
}

func printGenerated(gen api.GeneratedContract) {
	styles := ui.StylesFor(cfg.UI.Theme)
	fmt.Println(styles.Title.Render("Generated draft: " + gen.Title))
	fmt.Printf("  %s x %s, %s\n", gen.CreatorID, gen.BrandID, gen.ContractType)
	fmt.Printf("  budget: %.2f   risk score: %.1f\n", gen.Budget, gen.RiskScore)
	if gen.StartDate != "" || gen.EndDate != "" {
		fmt.Printf("  period: %s - %s\n", gen.StartDate, gen.EndDate)
	}
	for name, group := range map[string]map[string]any{
		"terms":         gen.TermsAndConditions,
		"payment terms": gen.PaymentTerms,
		"deliverables":  gen.Deliverables,
		"legal":         gen.LegalCompliance,
	} {
		if len(group) > 0 {
			data, _ := json.MarshalIndent(group, "  ", "  ")
			fmt.Printf("  %s:\n  %s\n", name, data)
		}
	}
	for _, s := range gen.Suggestions {
		fmt.Println(styles.Muted.Render("  suggestion: " + s))
	}
}

func runPricing(cmd *cobra.Command, args []string) error {
	if pricingFlags.creator == "" || pricingFlags.brand == "" {
		return errors.New("--creator and --brand are required")
	}
	resp, err := client.PricingRecommendation(cmd.Context(), api.PricingRequest{
		CreatorID:    pricingFlags.creator,
		BrandID:      pricingFlags.brand,
		ContractType: contract.Type(pricingFlags.ctype),
	})
	if err != nil {
		return userFacing(err)
	}
	min, max := wizard.Band(resp.RecommendedPrice)
	fmt.Printf("recommended price: %.2f (budget band %.2f - %.2f)\n", resp.RecommendedPrice, min, max)
	return nil
}

// ---------------------------------------------------------------------------
// Interactive wizard model
// ---------------------------------------------------------------------------

type wizardField struct {
	label string
	input textinput.Model
	set   func(d *wizard.Draft, v string)
	get   func(d wizard.Draft) string
}

type (
	generatedMsg   api.GeneratedContract
	wizardErrMsg   error
	pricingBandMsg float64
	createdMsg     string
)

type wizardModel struct {
	machine *wizard.Machine
	styles  ui.Styles
	spinner spinner.Model

	fields  []wizardField
	focus   int
	loading bool
	errText string
	done    bool

	client *api.Client
}

func newWizardModel(client *api.Client) wizardModel {
	m := wizardModel{
		machine: wizard.New(),
		styles:  ui.StylesFor(cfg.UI.Theme),
		client:  client,
	}
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = m.styles.Spinner
	m.spinner = sp
	m.fields = m.fieldsForStep()
	return m
}

func newField(label, placeholder string, set func(*wizard.Draft, string), get func(wizard.Draft) string) wizardField {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.CharLimit = 256
	ti.Width = 48
	return wizardField{label: label, input: ti, set: set, get: get}
}

// fieldsForStep builds the input fields of the current step, pre-filled from
// the draft so Back preserves what was typed.
func (m *wizardModel) fieldsForStep() []wizardField {
	var fields []wizardField
	switch m.machine.Step() {
	case wizard.StepBasicInfo:
		fields = []wizardField{
			newField("Creator ID", "u113",
				func(d *wizard.Draft, v string) { d.CreatorID = v },
				func(d wizard.Draft) string { return d.CreatorID }),
			newField("Brand ID", "u114",
				func(d *wizard.Draft, v string) { d.BrandID = v },
				func(d wizard.Draft) string { return d.BrandID }),
			newField("Title", "summer campaign",
				func(d *wizard.Draft, v string) { d.Title = v },
				func(d wizard.Draft) string { return d.Title }),
			newField("Type", "one_time | ongoing | performance_based",
				func(d *wizard.Draft, v string) { d.ContractType = contract.Type(v) },
				func(d wizard.Draft) string { return string(d.ContractType) }),
		}
	case wizard.StepContentRequirements:
		fields = []wizardField{
			newField("Platform", "instagram",
				func(d *wizard.Draft, v string) { d.Platform = v },
				func(d wizard.Draft) string { return d.Platform }),
			newField("Content type", "post, reel, story",
				func(d *wizard.Draft, v string) { d.ContentType = v },
				func(d wizard.Draft) string { return d.ContentType }),
			newField("Requirements", "what the creator must deliver",
				func(d *wizard.Draft, v string) { d.Requirements = v },
				func(d wizard.Draft) string { return d.Requirements }),
		}
	case wizard.StepPricing:
		fields = []wizardField{
			newField("Min budget", "500",
				func(d *wizard.Draft, v string) { d.MinBudget = v },
				func(d wizard.Draft) string { return d.MinBudget }),
			newField("Max budget", "5000",
				func(d *wizard.Draft, v string) { d.MaxBudget = v },
				func(d wizard.Draft) string { return d.MaxBudget }),
			newField("Start date", "YYYY-MM-DD",
				func(d *wizard.Draft, v string) { d.StartDate = v },
				func(d wizard.Draft) string { return d.StartDate }),
			newField("End date", "YYYY-MM-DD",
				func(d *wizard.Draft, v string) { d.EndDate = v },
				func(d wizard.Draft) string { return d.EndDate }),
			newField("Jurisdiction", strings.Join(contract.Jurisdictions(), " | "),
				func(d *wizard.Draft, v string) { d.Jurisdiction = v },
				func(d wizard.Draft) string { return d.Jurisdiction }),
			newField("Dispute resolution", strings.Join(contract.DisputeMethods, " | "),
				func(d *wizard.Draft, v string) { d.DisputeResolution = v },
				func(d wizard.Draft) string { return d.DisputeResolution }),
			newField("Custom law text", "required when jurisdiction is custom",
				func(d *wizard.Draft, v string) { d.CustomLawText = v },
				func(d wizard.Draft) string { return d.CustomLawText }),
			newField("Custom dispute text", "required when dispute is custom",
				func(d *wizard.Draft, v string) { d.CustomDisputeText = v },
				func(d wizard.Draft) string { return d.CustomDisputeText }),
		}
	default:
		return nil
	}
	for i := range fields {
		fields[i].input.SetValue(fields[i].get(m.machine.Draft))
	}
	if len(fields) > 0 {
		fields[0].input.Focus()
	}
	return fields
}

func (m *wizardModel) syncDraft() {
	for _, f := range m.fields {
		f.set(&m.machine.Draft, strings.TrimSpace(f.input.Value()))
	}
}

func (m wizardModel) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.spinner.Tick)
}

func (m wizardModel) generate() tea.Cmd {
	payload := m.machine.GenerationPayload()
	client := m.client
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), cfg.RequestTimeout())
		defer cancel()
		gen, err := client.Generate(ctx, payload)
		if err != nil {
			return wizardErrMsg(err)
		}
		return generatedMsg(gen)
	}
}

func (m wizardModel) fetchPricing() tea.Cmd {
	req := api.PricingRequest{
		CreatorID:    m.machine.Draft.CreatorID,
		BrandID:      m.machine.Draft.BrandID,
		ContractType: m.machine.Draft.ContractType,
	}
	client := m.client
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), cfg.RequestTimeout())
		defer cancel()
		resp, err := client.PricingRecommendation(ctx, req)
		if err != nil {
			return wizardErrMsg(err)
		}
		return pricingBandMsg(resp.RecommendedPrice)
	}
}

func (m wizardModel) createFromDraft() tea.Cmd {
	payload := wizard.CreatePayload(*m.machine.Result)
	client := m.client
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), cfg.RequestTimeout())
		defer cancel()
		created, err := client.CreateContract(ctx, payload)
		if err != nil {
			return wizardErrMsg(err)
		}
		return createdMsg(created.ID)
	}
}

func (m wizardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			return m, tea.Quit

		case tea.KeyTab, tea.KeyDown:
			m.moveFocus(1)
			return m, nil

		case tea.KeyShiftTab, tea.KeyUp:
			m.moveFocus(-1)
			return m, nil

		case tea.KeyCtrlB:
			if m.loading {
				return m, nil
			}
			m.machine.Back()
			m.fields = m.fieldsForStep()
			m.focus = 0
			m.errText = ""
			return m, nil

		case tea.KeyCtrlR:
			// Pricing recommendation, only meaningful on the pricing step.
			if m.machine.Step() == wizard.StepPricing && !m.loading {
				m.syncDraft()
				m.loading = true
				return m, tea.Batch(m.fetchPricing(), m.spinner.Tick)
			}
			return m, nil

		case tea.KeyEnter:
			if m.loading {
				return m, nil
			}
			switch m.machine.Step() {
			case wizard.StepBasicInfo, wizard.StepContentRequirements:
				m.syncDraft()
				if err := m.machine.Next(); err != nil {
					m.errText = err.Error()
					return m, nil
				}
				m.fields = m.fieldsForStep()
				m.focus = 0
				m.errText = ""
				return m, nil

			case wizard.StepPricing:
				m.syncDraft()
				if err := m.machine.ValidateForGeneration(); err != nil {
					m.errText = err.Error()
					return m, nil
				}
				m.loading = true
				m.errText = ""
				return m, tea.Batch(m.generate(), m.spinner.Tick)

			case wizard.StepResult:
				if m.machine.Result != nil && !m.done {
					m.loading = true
					return m, tea.Batch(m.createFromDraft(), m.spinner.Tick)
				}
				return m, tea.Quit
			}
		}

		if !m.loading && m.focus < len(m.fields) {
			var cmd tea.Cmd
			m.fields[m.focus].input, cmd = m.fields[m.focus].input.Update(msg)
			return m, cmd
		}

	case spinner.TickMsg:
		if m.loading {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			return m, cmd
		}

	case generatedMsg:
		m.loading = false
		if err := m.machine.SetResult(api.GeneratedContract(msg)); err != nil {
			m.errText = err.Error()
			return m, nil
		}
		m.fields = nil
		m.errText = ""
		return m, nil

	case pricingBandMsg:
		m.loading = false
		m.machine.ApplyPricingRecommendation(float64(msg))
		m.fields = m.fieldsForStep()
		m.focus = 0
		return m, nil

	case createdMsg:
		m.loading = false
		m.done = true
		m.errText = "created contract " + string(msg)
		return m, nil

	case wizardErrMsg:
		m.loading = false
		m.errText = userFacing(error(msg)).Error()
		return m, nil
	}
	return m, nil
}

func (m *wizardModel) moveFocus(delta int) {
	if len(m.fields) == 0 {
		return
	}
	m.fields[m.focus].input.Blur()
	m.focus = (m.focus + delta + len(m.fields)) % len(m.fields)
	m.fields[m.focus].input.Focus()
}

func (m wizardModel) View() string {
	var sb strings.Builder
	sb.WriteString(m.styles.Title.Render("Smart contract generator") + "\n")
	sb.WriteString(m.stepHeader() + "\n\n")

	if m.machine.Step() == wizard.StepResult {
		sb.WriteString(m.resultView())
	} else {
		for i, f := range m.fields {
			label := m.styles.Muted.Render(f.label)
			if i == m.focus {
				label = m.styles.StepNow.Render(f.label)
			}
			sb.WriteString(fmt.Sprintf("%s\n%s\n", label, f.input.View()))
		}
		sb.WriteString("\n" + m.styles.Muted.Render("enter: continue · tab: next field · ctrl+b: back"))
		if m.machine.Step() == wizard.StepPricing {
			sb.WriteString(m.styles.Muted.Render(" · ctrl+r: pricing recommendation"))
		}
		sb.WriteString("\n")
	}

	if m.loading {
		sb.WriteString("\n" + m.spinner.View() + " working...\n")
	}
	if m.errText != "" {
		sb.WriteString("\n" + m.styles.Error.Render(m.errText) + "\n")
	}
	return sb.String()
}

func (m wizardModel) stepHeader() string {
	steps := []wizard.Step{
		wizard.StepBasicInfo, wizard.StepContentRequirements,
		wizard.StepPricing, wizard.StepResult,
	}
	parts := make([]string, len(steps))
	for i, s := range steps {
		label := fmt.Sprintf("%d. %s", i+1, s)
		switch {
		case s == m.machine.Step():
			parts[i] = m.styles.StepNow.Render(label)
		case s < m.machine.Step():
			parts[i] = m.styles.StepDone.Render(label)
		default:
			parts[i] = m.styles.Muted.Render(label)
		}
	}
	return strings.Join(parts, m.styles.Muted.Render(" > "))
}

func (m wizardModel) resultView() string {
	gen := m.machine.Result
	if gen == nil {
		return m.styles.Muted.Render("no result")
	}
	var sb strings.Builder
	sb.WriteString(m.styles.Header.Render(gen.Title) + "\n")
	sb.WriteString(fmt.Sprintf("%s x %s, %s\n", gen.CreatorID, gen.BrandID, gen.ContractType))
	sb.WriteString(fmt.Sprintf("budget %.2f, risk score %.1f\n", gen.Budget, gen.RiskScore))
	for _, s := range gen.Suggestions {
		sb.WriteString(m.styles.Muted.Render("suggestion: "+s) + "\n")
	}
	if m.done {
		sb.WriteString("\n" + m.styles.Success.Render("contract created - enter or esc to exit") + "\n")
	} else {
		sb.WriteString("\n" + m.styles.Muted.Render("enter: create contract from draft · ctrl+b: back · esc: exit") + "\n")
	}
	return sb.String()
}
