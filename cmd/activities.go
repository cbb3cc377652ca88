package cmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/sportbook-io/sportbook-cli/internal/catalog"
	"github.com/sportbook-io/sportbook-cli/internal/model"
	"github.com/sportbook-io/sportbook-cli/internal/tui"
	"github.com/spf13/cobra"
)

var (
	activitiesSport    string
	activitiesLocation string
	activitiesSearch   string
	activitiesOutput   string
)

var ActivitiesCmd = &cobra.Command{
	Use:   "activities",
	Short: "List bookable activities",
	Long: `List the activity catalog, optionally narrowed by sport, location
or a free-text search over sport names and descriptions.

Activities sharing the same sport, venue and day are grouped into one
entry listing all available times.

Example:
  sportbook activities --sport Padel --location Milan
`,
	RunE: runActivities,
}

func init() {
	ActivitiesCmd.Flags().StringVarP(&activitiesSport, "sport", "s", "", "Only this sport (\"ALL\" or empty means any)")
	ActivitiesCmd.Flags().StringVarP(&activitiesLocation, "location", "l", "", "Only this location (\"ALL\" or empty means any)")
	ActivitiesCmd.Flags().StringVarP(&activitiesSearch, "search", "q", "", "Free-text search over sports and descriptions")
	ActivitiesCmd.Flags().StringVarP(&activitiesOutput, "output", "o", "table", "Output format: table, json or yaml")
}

func runActivities(cmd *cobra.Command, args []string) error {
	app, err := newApp()
	if err != nil {
		return err
	}
	defer app.Close()

	viewer, err := app.Viewer()
	if err != nil {
		return err
	}

	filters := catalog.Filters{
		Sport:    activitiesSport,
		Location: activitiesLocation,
		Search:   activitiesSearch,
	}
	activities := app.Catalog.List(commandContext(), filters, viewer)

	if activitiesOutput != "table" {
		return writeStructured(activitiesOutput, activitiesDoc(activities, viewer))
	}

	if len(activities) == 0 {
		fmt.Println(tui.RenderInfo("No activities match."))
		return nil
	}

	for _, a := range activities {
		printActivity(a, viewer)
	}
	fmt.Println()
	fmt.Println(tui.RenderInfo("Book one with: sportbook reserve <activity-id>"))
	return nil
}

func printActivity(a model.Activity, viewer model.User) {
	fmt.Println()
	fmt.Printf("%s  #%d %s\n", tui.IconCalendar, a.ID, tui.TitleStyle.Render(a.Sport))
	fmt.Printf("   %s %s  %s %s\n", tui.IconClock, a.Date.Format("Mon 2 Jan 2006"), tui.IconPlace, a.Location)
	fmt.Printf("   %s %s\n", tui.IconTicket, a.CompanyName)
	if a.Description != "" {
		fmt.Printf("   %s\n", tui.MutedStyle.Render(a.Description))
	}
	fmt.Printf("   Times: %s  Max group: %d\n", joinTimes(a.Times), a.MaxParticipants)
	fmt.Printf("   %s", tui.BookabilityBadge(a.BookableBy(viewer)))
	if a.ReservationID != nil {
		fmt.Printf("  %s", tui.RenderWarning(fmt.Sprintf("already booked (reservation #%d)", *a.ReservationID)))
	}
	fmt.Println()
}

func joinTimes(times []string) string {
	return strings.Join(times, ", ")
}

// activityDoc is the structured-output projection of an activity.
type activityDoc struct {
	ID             int64    `json:"id" yaml:"id"`
	Sport          string   `json:"sport" yaml:"sport"`
	Date           string   `json:"date" yaml:"date"`
	Times          []string `json:"times" yaml:"times"`
	Location       string   `json:"location" yaml:"location"`
	Company        string   `json:"company" yaml:"company"`
	Description    string   `json:"description,omitempty" yaml:"description,omitempty"`
	MaxGroup       int      `json:"max_group" yaml:"max_group"`
	Bookability    string   `json:"bookability" yaml:"bookability"`
	ReservationID  *int64   `json:"reservation_id,omitempty" yaml:"reservation_id,omitempty"`
	AllowAnonymous bool     `json:"allow_anonymous" yaml:"allow_anonymous"`
}

func activitiesDoc(activities []model.Activity, viewer model.User) []activityDoc {
	docs := make([]activityDoc, 0, len(activities))
	for _, a := range activities {
		docs = append(docs, activityDoc{
			ID:             a.ID,
			Sport:          a.Sport,
			Date:           a.Date.Format(time.DateOnly),
			Times:          a.Times,
			Location:       a.Location,
			Company:        a.CompanyName,
			Description:    a.Description,
			MaxGroup:       a.MaxParticipants,
			Bookability:    a.BookableBy(viewer).String(),
			ReservationID:  a.ReservationID,
			AllowAnonymous: a.AllowAnonymous,
		})
	}
	return docs
}
