package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"dealdesk/cmd/dealdesk/ui"
	"dealdesk/internal/api"
	"dealdesk/internal/contract"
)

// Thin command surface over the per-resource endpoints. Each record is
// scoped to a contract by id; the backend owns consistency.

var templatesCmd = &cobra.Command{
	Use:   "templates",
	Short: "Manage contract templates",
}

var templatesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List templates",
	RunE: func(cmd *cobra.Command, args []string) error {
		styles := ui.StylesFor(cfg.UI.Theme)
		templates, err := client.ListTemplates(cmd.Context())
		if err != nil {
			if api.Unavailable(err) {
				fmt.Println(styles.Banner.Render("backend unavailable - no templates"))
				return nil
			}
			return userFacing(err)
		}
		if len(templates) == 0 {
			fmt.Println(styles.Muted.Render("no templates"))
			return nil
		}
		t := ui.NewTable("Templates", []string{"ID", "Name", "Type"})
		for _, tpl := range templates {
			t.AddRow(tpl.ID, tpl.Name, string(tpl.ContractType))
		}
		fmt.Print(t.View(styles))
		return nil
	},
}

var templatesShowCmd = &cobra.Command{
	Use:   "show [id]",
	Short: "Show one template",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		styles := ui.StylesFor(cfg.UI.Theme)
		tpl, err := client.GetTemplate(cmd.Context(), args[0])
		if err != nil {
			return userFacing(err)
		}
		fmt.Println(styles.Title.Render(tpl.Name))
		fmt.Printf("  id: %s   type: %s\n", tpl.ID, tpl.ContractType)
		if len(tpl.Body) > 0 {
			data, _ := json.MarshalIndent(tpl.Body, "  ", "  ")
			fmt.Printf("  %s\n", data)
		}
		return nil
	},
}

var templateFlags struct {
	name  string
	ctype string
	body  string
}

var templatesCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a template",
	RunE: func(cmd *cobra.Command, args []string) error {
		if templateFlags.name == "" {
			return fmt.Errorf("--name is required")
		}
		if !contract.ValidType(contract.Type(templateFlags.ctype)) {
			return fmt.Errorf("--type must be one of %v", contract.ValidTypes)
		}
		body, err := parseGroup("body", templateFlags.body)
		if err != nil {
			return err
		}
		payload := map[string]any{
			"name":          templateFlags.name,
			"contract_type": templateFlags.ctype,
		}
		if len(body) > 0 {
			payload["body"] = body
		}
		tpl, err := client.CreateTemplate(cmd.Context(), payload)
		if err != nil {
			return userFacing(err)
		}
		fmt.Printf("created template %s\n", tpl.ID)
		return nil
	},
}

var templatesDeleteCmd = &cobra.Command{
	Use:   "delete [id]",
	Short: "Delete a template",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := client.DeleteTemplate(cmd.Context(), args[0]); err != nil {
			return userFacing(err)
		}
		fmt.Printf("deleted template %s\n", args[0])
		return nil
	},
}

var milestonesCmd = &cobra.Command{
	Use:   "milestones [contract-id]",
	Short: "List the milestones of a contract",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		styles := ui.StylesFor(cfg.UI.Theme)
		milestones, err := client.ListMilestones(cmd.Context(), args[0])
		if err != nil {
			if api.Unavailable(err) {
				fmt.Println(styles.Banner.Render("backend unavailable - no milestones"))
				return nil
			}
			return userFacing(err)
		}
		if len(milestones) == 0 {
			fmt.Println(styles.Muted.Render("no milestones"))
			return nil
		}
		t := ui.NewTable("Milestones", []string{"ID", "Title", "Amount", "Due", "Status"})
		for _, m := range milestones {
			amount := ""
			if m.Amount != nil {
				amount = fmt.Sprintf("%.2f", *m.Amount)
			}
			t.AddRow(m.ID, m.Title, amount, dateOrDash(m.DueDate), m.Status)
		}
		fmt.Print(t.View(styles))
		return nil
	},
}

var milestoneFlags struct {
	title  string
	amount string
	due    string
}

var milestonesAddCmd = &cobra.Command{
	Use:   "add [contract-id]",
	Short: "Add a milestone to a contract",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if milestoneFlags.title == "" {
			return fmt.Errorf("--title is required")
		}
		payload := map[string]any{"title": milestoneFlags.title}
		if milestoneFlags.amount != "" {
			amount, ok := contract.ParseBudget(milestoneFlags.amount)
			if !ok {
				return fmt.Errorf("invalid --amount %q", milestoneFlags.amount)
			}
			payload["amount"] = amount
		}
		if milestoneFlags.due != "" {
			due, err := parseDate(milestoneFlags.due)
			if err != nil {
				return err
			}
			payload["due_date"] = due.Format("2006-01-02")
		}
		m, err := client.CreateMilestone(cmd.Context(), args[0], payload)
		if err != nil {
			return userFacing(err)
		}
		fmt.Printf("added milestone %s\n", m.ID)
		return nil
	},
}

var milestonesRemoveCmd = &cobra.Command{
	Use:   "remove [contract-id] [id]",
	Short: "Remove a milestone from a contract",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := client.DeleteMilestone(cmd.Context(), args[0], args[1]); err != nil {
			return userFacing(err)
		}
		fmt.Printf("removed milestone %s\n", args[1])
		return nil
	},
}

var deliverablesCmd = &cobra.Command{
	Use:   "deliverables [contract-id]",
	Short: "List the deliverables of a contract",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		styles := ui.StylesFor(cfg.UI.Theme)
		deliverables, err := client.ListDeliverables(cmd.Context(), args[0])
		if err != nil {
			if api.Unavailable(err) {
				fmt.Println(styles.Banner.Render("backend unavailable - no deliverables"))
				return nil
			}
			return userFacing(err)
		}
		if len(deliverables) == 0 {
			fmt.Println(styles.Muted.Render("no deliverables"))
			return nil
		}
		t := ui.NewTable("Deliverables", []string{"ID", "Platform", "Content", "Qty", "Due", "Status"})
		for _, d := range deliverables {
			t.AddRow(d.ID, d.Platform, d.ContentType, fmt.Sprintf("%d", d.Quantity), dateOrDash(d.DueDate), d.Status)
		}
		fmt.Print(t.View(styles))
		return nil
	},
}

var deliverableFlags struct {
	platform    string
	contentType string
	quantity    int
	due         string
}

var deliverablesAddCmd = &cobra.Command{
	Use:   "add [contract-id]",
	Short: "Add a deliverable to a contract",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if deliverableFlags.platform == "" || deliverableFlags.contentType == "" {
			return fmt.Errorf("--platform and --content-type are required")
		}
		payload := map[string]any{
			"platform":     deliverableFlags.platform,
			"content_type": deliverableFlags.contentType,
			"quantity":     deliverableFlags.quantity,
		}
		if deliverableFlags.due != "" {
			due, err := parseDate(deliverableFlags.due)
			if err != nil {
				return err
			}
			payload["due_date"] = due.Format("2006-01-02")
		}
		d, err := client.CreateDeliverable(cmd.Context(), args[0], payload)
		if err != nil {
			return userFacing(err)
		}
		fmt.Printf("added deliverable %s\n", d.ID)
		return nil
	},
}

var deliverablesRemoveCmd = &cobra.Command{
	Use:   "remove [contract-id] [id]",
	Short: "Remove a deliverable from a contract",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := client.DeleteDeliverable(cmd.Context(), args[0], args[1]); err != nil {
			return userFacing(err)
		}
		fmt.Printf("removed deliverable %s\n", args[1])
		return nil
	},
}

var paymentsCmd = &cobra.Command{
	Use:   "payments [contract-id]",
	Short: "List the payments of a contract",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		styles := ui.StylesFor(cfg.UI.Theme)
		payments, err := client.ListPayments(cmd.Context(), args[0])
		if err != nil {
			if api.Unavailable(err) {
				fmt.Println(styles.Banner.Render("backend unavailable - no payments"))
				return nil
			}
			return userFacing(err)
		}
		if len(payments) == 0 {
			fmt.Println(styles.Muted.Render("no payments"))
			return nil
		}
		t := ui.NewTable("Payments", []string{"ID", "Amount", "Currency", "Status", "Paid"})
		for _, p := range payments {
			t.AddRow(p.ID, fmt.Sprintf("%.2f", p.Amount), p.Currency, p.Status, dateOrDash(p.PaidAt))
		}
		fmt.Print(t.View(styles))
		return nil
	},
}

var commentBody string

var commentsCmd = &cobra.Command{
	Use:   "comments [contract-id]",
	Short: "List or add comments on a contract",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if commentBody != "" {
			comment, err := client.CreateComment(cmd.Context(), args[0], cfg.ActorOrDefault(), commentBody)
			if err != nil {
				return userFacing(err)
			}
			fmt.Printf("added comment %s\n", comment.ID)
			return nil
		}
		styles := ui.StylesFor(cfg.UI.Theme)
		comments, err := client.ListComments(cmd.Context(), args[0])
		if err != nil {
			if api.Unavailable(err) {
				fmt.Println(styles.Banner.Render("backend unavailable - no comments"))
				return nil
			}
			return userFacing(err)
		}
		if len(comments) == 0 {
			fmt.Println(styles.Muted.Render("no comments"))
			return nil
		}
		for _, c := range comments {
			fmt.Printf("[%s] %s: %s\n", c.CreatedAt.Format("2006-01-02 15:04"), c.Author, c.Body)
		}
		return nil
	},
}

var notificationsCmd = &cobra.Command{
	Use:   "notifications",
	Short: "List notifications",
	RunE: func(cmd *cobra.Command, args []string) error {
		styles := ui.StylesFor(cfg.UI.Theme)
		notifications, err := client.ListNotifications(cmd.Context())
		if err != nil {
			if api.Unavailable(err) {
				fmt.Println(styles.Banner.Render("backend unavailable - no notifications"))
				return nil
			}
			return userFacing(err)
		}
		if len(notifications) == 0 {
			fmt.Println(styles.Muted.Render("no notifications"))
			return nil
		}
		for _, n := range notifications {
			marker := " "
			if !n.Read {
				marker = "*"
			}
			fmt.Printf("%s [%s] %s %s\n", marker, n.CreatedAt.Format("2006-01-02 15:04"), n.Kind, n.Message)
		}
		return nil
	},
}

var notificationsReadCmd = &cobra.Command{
	Use:   "read [id]",
	Short: "Mark a notification as read",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := client.MarkNotificationRead(cmd.Context(), args[0]); err != nil {
			return userFacing(err)
		}
		return nil
	},
}

var usersCmd = &cobra.Command{
	Use:   "users",
	Short: "Look up platform users",
}

var usersShowCmd = &cobra.Command{
	Use:   "show [id]",
	Short: "Show a user profile",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		u, err := client.GetUser(cmd.Context(), args[0])
		if err != nil {
			return userFacing(err)
		}
		fmt.Printf("%s  %s (%s)", u.ID, u.Name, u.Role)
		if u.Platform != "" {
			fmt.Printf(" on %s", u.Platform)
		}
		fmt.Println()
		return nil
	},
}

var usersAvailableCmd = &cobra.Command{
	Use:   "available",
	Short: "List creators and brands eligible for generation",
	RunE: func(cmd *cobra.Command, args []string) error {
		styles := ui.StylesFor(cfg.UI.Theme)
		users, err := client.AvailableUsers(cmd.Context())
		if err != nil {
			if api.Unavailable(err) {
				fmt.Println(styles.Banner.Render("backend unavailable - no users"))
				return nil
			}
			return userFacing(err)
		}
		t := ui.NewTable("Available users", []string{"ID", "Name", "Role", "Platform"})
		for _, u := range users {
			t.AddRow(u.ID, u.Name, u.Role, u.Platform)
		}
		if len(users) == 0 {
			fmt.Println(styles.Muted.Render("no available users"))
			return nil
		}
		fmt.Print(t.View(styles))
		return nil
	},
}

func init() {
	tf := templatesCreateCmd.Flags()
	tf.StringVar(&templateFlags.name, "name", "", "template name")
	tf.StringVar(&templateFlags.ctype, "type", "", "contract type (one_time|ongoing|performance_based)")
	tf.StringVar(&templateFlags.body, "body", "", "template body (JSON object)")

	mf := milestonesAddCmd.Flags()
	mf.StringVar(&milestoneFlags.title, "title", "", "milestone title")
	mf.StringVar(&milestoneFlags.amount, "amount", "", "milestone amount")
	mf.StringVar(&milestoneFlags.due, "due", "", "due date (YYYY-MM-DD)")

	df := deliverablesAddCmd.Flags()
	df.StringVar(&deliverableFlags.platform, "platform", "", "target platform")
	df.StringVar(&deliverableFlags.contentType, "content-type", "", "content type")
	df.IntVar(&deliverableFlags.quantity, "quantity", 1, "number of items")
	df.StringVar(&deliverableFlags.due, "due", "", "due date (YYYY-MM-DD)")

	templatesCmd.AddCommand(templatesListCmd)
	templatesCmd.AddCommand(templatesShowCmd)
	templatesCmd.AddCommand(templatesCreateCmd)
	templatesCmd.AddCommand(templatesDeleteCmd)
	milestonesCmd.AddCommand(milestonesAddCmd)
	milestonesCmd.AddCommand(milestonesRemoveCmd)
	deliverablesCmd.AddCommand(deliverablesAddCmd)
	deliverablesCmd.AddCommand(deliverablesRemoveCmd)
	commentsCmd.Flags().StringVar(&commentBody, "add", "", "add a comment instead of listing")
	notificationsCmd.AddCommand(notificationsReadCmd)
	usersCmd.AddCommand(usersShowCmd)
	usersCmd.AddCommand(usersAvailableCmd)
}
