package cmd

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/sportbook-io/sportbook-cli/internal/booking"
	"github.com/sportbook-io/sportbook-cli/internal/model"
	"github.com/sportbook-io/sportbook-cli/internal/store"
	"github.com/sportbook-io/sportbook-cli/internal/tui"
	"github.com/spf13/cobra"
)

var (
	reservationsSport    string
	reservationsLocation string
	reservationsSearch   string
	reservationsOutput   string

	lookupID   int64
	lookupCode string

	feedbackScore   int
	feedbackMessage string
)

var ReservationsCmd = &cobra.Command{
	Use:   "reservations",
	Short: "Manage your reservations",
	Long: `List and manage your reservations.

Logged-in users see the reservations held by their account. Anonymous
users see the bookings made from this machine; those transfer to your
account automatically when you log in.
`,
	RunE: runReservationsList,
}

var reservationsEditCmd = &cobra.Command{
	Use:   "edit <reservation-id>",
	Short: "Change the time or group size of a reservation",
	Args:  cobra.ExactArgs(1),
	RunE:  runReservationsEdit,
}

var reservationsDeleteCmd = &cobra.Command{
	Use:   "delete <reservation-id>",
	Short: "Cancel a reservation",
	Args:  cobra.ExactArgs(1),
	RunE:  runReservationsDelete,
}

var reservationsFeedbackCmd = &cobra.Command{
	Use:   "feedback <reservation-id>",
	Short: "Leave feedback for a validated reservation",
	Long: `Leave a score and an optional message for a reservation the venue has
validated. Feedback earns one loyalty point and can be left once per
reservation. Requires login.
`,
	Args: cobra.ExactArgs(1),
	RunE: runReservationsFeedback,
}

var reservationsLookupCmd = &cobra.Command{
	Use:   "lookup",
	Short: "Recover an anonymous reservation by id and security code",
	Long: `Fetch a reservation booked anonymously, using the id and the security
code printed when it was created. The reservation is stored locally
again, so it shows up in listings and transfers on login.
`,
	RunE: runReservationsLookup,
}

var reservationsLinkCmd = &cobra.Command{
	Use:   "link",
	Short: "Transfer locally stored reservations to your account",
	RunE:  runReservationsLink,
}

func init() {
	ReservationsCmd.Flags().StringVarP(&reservationsSport, "sport", "s", "", "Only this sport")
	ReservationsCmd.Flags().StringVarP(&reservationsLocation, "location", "l", "", "Only this location")
	ReservationsCmd.Flags().StringVarP(&reservationsSearch, "search", "q", "", "Free-text search")
	ReservationsCmd.Flags().StringVarP(&reservationsOutput, "output", "o", "table", "Output format: table, json or yaml")

	reservationsLookupCmd.Flags().Int64Var(&lookupID, "id", 0, "Reservation id")
	reservationsLookupCmd.Flags().StringVar(&lookupCode, "code", "", "Security code printed at booking time")
	_ = reservationsLookupCmd.MarkFlagRequired("id")
	_ = reservationsLookupCmd.MarkFlagRequired("code")

	reservationsFeedbackCmd.Flags().IntVar(&feedbackScore, "score", 0, "Score from 1 to 5")
	reservationsFeedbackCmd.Flags().StringVarP(&feedbackMessage, "message", "m", "", "Optional message")

	ReservationsCmd.AddCommand(reservationsEditCmd)
	ReservationsCmd.AddCommand(reservationsDeleteCmd)
	ReservationsCmd.AddCommand(reservationsFeedbackCmd)
	ReservationsCmd.AddCommand(reservationsLookupCmd)
	ReservationsCmd.AddCommand(reservationsLinkCmd)
}

func runReservationsList(cmd *cobra.Command, args []string) error {
	app, err := newApp()
	if err != nil {
		return err
	}
	defer app.Close()

	viewer, err := app.Viewer()
	if err != nil {
		return err
	}

	filters := booking.Filters{
		Sport:    reservationsSport,
		Location: reservationsLocation,
		Search:   reservationsSearch,
	}
	reservations := app.Booking.List(commandContext(), filters, viewer)

	if reservationsOutput != "table" {
		return writeStructured(reservationsOutput, reservationsDoc(reservations))
	}

	if len(reservations) == 0 {
		fmt.Println(tui.RenderInfo("No reservations."))
		if _, anonymous := viewer.(model.Anonymous); anonymous {
			fmt.Println(tui.MutedStyle.Render("Anonymous bookings from this machine would show up here; log in to see your account's."))
		}
		return nil
	}

	now := time.Now()
	for _, r := range reservations {
		printReservation(r, now)
	}
	return nil
}

func printReservation(r model.Reservation, now time.Time) {
	fmt.Println()
	fmt.Printf("%s  #%d %s at %s  %s\n", tui.IconTicket, r.ID,
		tui.TitleStyle.Render(r.Sport), r.CompanyName, tui.StatusBadge(r.StatusAt(now)))
	fmt.Printf("   %s %s %s  %s %s\n", tui.IconClock, r.Date.Format("Mon 2 Jan 2006"), r.Time, tui.IconPlace, r.Location)
	fmt.Printf("   %s %d booked, %d spots left\n", tui.IconGroup, r.Participants, r.AvailableParticipants)
	if r.SecurityCode != "" {
		fmt.Printf("   %s code %s\n", tui.IconKey, r.SecurityCode)
	}
	if hints := actionHints(r, now); hints != "" {
		fmt.Printf("   %s\n", tui.MutedStyle.Render(hints))
	}
}

func actionHints(r model.Reservation, now time.Time) string {
	actions := r.ActionsAt(now)
	hints := ""
	for _, a := range actions {
		var h string
		switch a {
		case model.ActionEdit:
			h = fmt.Sprintf("edit: sportbook reservations edit %d", r.ID)
		case model.ActionDelete:
			h = fmt.Sprintf("cancel: sportbook reservations delete %d", r.ID)
		case model.ActionFeedback:
			h = fmt.Sprintf("feedback: sportbook reservations feedback %d", r.ID)
		}
		if hints != "" {
			hints += "  "
		}
		hints += h
	}
	return hints
}

// findReservation locates a reservation in the viewer's listing, which
// covers both server-side and locally stored bookings.
func findReservation(app *App, viewer model.User, id int64) (model.Reservation, error) {
	for _, r := range app.Booking.List(commandContext(), booking.Filters{}, viewer) {
		if r.ID == id {
			return r, nil
		}
	}
	return model.Reservation{}, fmt.Errorf("reservation %d not found in your listing", id)
}

func runReservationsEdit(cmd *cobra.Command, args []string) error {
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid reservation id: %s", args[0])
	}

	app, err := newApp()
	if err != nil {
		return err
	}
	defer app.Close()

	viewer, err := app.Viewer()
	if err != nil {
		return err
	}

	reservation, err := findReservation(app, viewer, id)
	if err != nil {
		return err
	}
	if !allowsAction(reservation, model.ActionEdit) {
		return fmt.Errorf("reservation %d can no longer be edited (%s)", id, reservation.StatusAt(time.Now()))
	}

	ctx := commandContext()
	options := app.Booking.EditOptions(ctx, id)
	if len(options) == 0 {
		return fmt.Errorf("no time slots available for reservation %d", id)
	}

	slot, err := pickSlot(editSlots(options))
	if err != nil {
		return err
	}

	participants, err := promptParticipants(slot.AvailableParticipants, reservation.Participants)
	if err != nil {
		return err
	}

	if err := app.Booking.Edit(ctx, reservation, slot.Time, participants, viewer); err != nil {
		if errors.Is(err, booking.ErrTimeUnavailable) {
			return fmt.Errorf("that time slot filled up; run the edit again")
		}
		return fmt.Errorf("edit failed: %w", err)
	}

	fmt.Println(tui.RenderSuccess(fmt.Sprintf("Reservation #%d moved to %s with %d participants.", id, slot.Time, participants)))
	return nil
}

// editSlots projects edit-time options onto the shared slot picker.
func editSlots(options []model.ReservationOption) []model.ActivityOption {
	slots := make([]model.ActivityOption, 0, len(options))
	for _, o := range options {
		slots = append(slots, model.ActivityOption{
			ActivityID:            o.ActivityID,
			Time:                  o.Time,
			AvailableParticipants: o.AvailableParticipants,
			ReservationID:         o.ReservationID,
		})
	}
	return slots
}

func allowsAction(r model.Reservation, want model.Action) bool {
	for _, a := range r.ActionsAt(time.Now()) {
		if a == want {
			return true
		}
	}
	return false
}

func runReservationsDelete(cmd *cobra.Command, args []string) error {
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid reservation id: %s", args[0])
	}

	app, err := newApp()
	if err != nil {
		return err
	}
	defer app.Close()

	viewer, err := app.Viewer()
	if err != nil {
		return err
	}

	reservation, err := findReservation(app, viewer, id)
	if err != nil {
		return err
	}

	ok, err := tui.RunConfirm(fmt.Sprintf("Cancel %s?", reservation.Summary()), false)
	if err != nil {
		return err
	}
	if !ok {
		fmt.Println(tui.RenderInfo("Kept the reservation."))
		return nil
	}

	if err := app.Booking.Delete(commandContext(), id, viewer); err != nil {
		return fmt.Errorf("cancellation failed: %w", err)
	}
	fmt.Println(tui.RenderSuccess(fmt.Sprintf("Reservation #%d cancelled.", id)))
	return nil
}

func runReservationsFeedback(cmd *cobra.Command, args []string) error {
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid reservation id: %s", args[0])
	}

	app, err := newApp()
	if err != nil {
		return err
	}
	defer app.Close()

	viewer, err := app.RequireLogin()
	if err != nil {
		return err
	}

	reservation, err := app.Booking.Get(commandContext(), id)
	if err != nil {
		return err
	}

	score := feedbackScore
	if score == 0 {
		score, err = promptScore()
		if err != nil {
			return err
		}
	}

	message := feedbackMessage
	if message == "" && !cmd.Flags().Changed("message") {
		message, err = tui.RunInput("Message (optional):", "how was it?", "")
		if err != nil {
			return err
		}
	}

	if err := app.Booking.SubmitFeedback(commandContext(), reservation, score, message, viewer.ID); err != nil {
		if errors.Is(err, booking.ErrInvalidScore) {
			return fmt.Errorf("score must be between 1 and 5")
		}
		if errors.Is(err, booking.ErrFeedbackNotAllowed) {
			return fmt.Errorf("reservation %d does not accept feedback: it must be validated by the venue and reviewed at most once", id)
		}
		return fmt.Errorf("feedback failed: %w", err)
	}

	fmt.Println(tui.RenderSuccess("Thanks for the feedback! You earned a loyalty point."))
	fmt.Println(tui.MutedStyle.Render("Spend points with: sportbook rewards"))
	return nil
}

func promptScore() (int, error) {
	options := make([]tui.SelectOption, 0, 5)
	for s := 5; s >= 1; s-- {
		options = append(options, tui.SelectOption{
			Label: fmt.Sprintf("%d/5", s),
			Value: strconv.Itoa(s),
		})
	}
	chosen, err := tui.RunSelect("Score:", options)
	if err != nil {
		return 0, err
	}
	return strconv.Atoi(chosen)
}

func runReservationsLookup(cmd *cobra.Command, args []string) error {
	app, err := newApp()
	if err != nil {
		return err
	}
	defer app.Close()

	viewer, err := app.Viewer()
	if err != nil {
		return err
	}

	reservation, err := app.Booking.Lookup(commandContext(), lookupID, lookupCode, viewer)
	if err != nil {
		if errors.Is(err, booking.ErrNotFound) {
			return fmt.Errorf("no reservation matches that id and code")
		}
		return err
	}

	fmt.Println(tui.RenderSuccess("Reservation recovered and stored locally."))
	printReservation(reservation, time.Now())
	return nil
}

func runReservationsLink(cmd *cobra.Command, args []string) error {
	app, err := newApp()
	if err != nil {
		return err
	}
	defer app.Close()

	viewer, err := app.RequireLogin()
	if err != nil {
		return err
	}

	outcome, err := app.Reservations.Link(commandContext(), viewer.ID)
	if err != nil {
		return fmt.Errorf("linking failed, local reservations kept: %w", err)
	}
	fmt.Println(linkSummary(outcome))
	return nil
}

func linkSummary(outcome store.LinkOutcome) string {
	if outcome.Attempted == 0 {
		return tui.RenderInfo("No local reservations to transfer.")
	}
	return tui.RenderSuccess(fmt.Sprintf("Transferred %d reservation(s) to your account.", outcome.Attempted))
}

// reservationDoc is the structured-output projection of a reservation.
type reservationDoc struct {
	ID           int64  `json:"id" yaml:"id"`
	Sport        string `json:"sport" yaml:"sport"`
	Company      string `json:"company" yaml:"company"`
	Date         string `json:"date" yaml:"date"`
	Time         string `json:"time" yaml:"time"`
	Location     string `json:"location" yaml:"location"`
	Participants int    `json:"participants" yaml:"participants"`
	SpotsLeft    int    `json:"spots_left" yaml:"spots_left"`
	Status       string `json:"status" yaml:"status"`
	SecurityCode string `json:"security_code,omitempty" yaml:"security_code,omitempty"`
}

func reservationsDoc(reservations []model.Reservation) []reservationDoc {
	now := time.Now()
	docs := make([]reservationDoc, 0, len(reservations))
	for _, r := range reservations {
		docs = append(docs, reservationDoc{
			ID:           r.ID,
			Sport:        r.Sport,
			Company:      r.CompanyName,
			Date:         r.Date.Format(time.DateOnly),
			Time:         r.Time,
			Location:     r.Location,
			Participants: r.Participants,
			SpotsLeft:    r.AvailableParticipants,
			Status:       r.StatusAt(now).String(),
			SecurityCode: r.SecurityCode,
		})
	}
	return docs
}
