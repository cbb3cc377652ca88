package cmd

import (
	"fmt"
	"strconv"

	"github.com/sportbook-io/sportbook-cli/internal/model"
	"github.com/sportbook-io/sportbook-cli/internal/tui"
	"github.com/spf13/cobra"
)

var ReserveCmd = &cobra.Command{
	Use:   "reserve <activity-id>",
	Short: "Book an activity",
	Long: `Book one time slot of an activity. You will be guided through:
  1. Time selection (skipped when only one slot exists)
  2. Group size, bounded by the slot's remaining capacity

Anonymous bookings are accepted where the venue allows them; keep the
printed security code, it is the only way to manage the reservation
later or claim it after registering.
`,
	Args: cobra.ExactArgs(1),
	RunE: runReserve,
}

func runReserve(cmd *cobra.Command, args []string) error {
	activityID, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid activity id: %s", args[0])
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

	ctx := commandContext()
	options := app.Booking.Options(ctx, activityID, viewer)
	if len(options) == 0 {
		return fmt.Errorf("activity %d has no bookable time slots", activityID)
	}

	option, err := pickSlot(options)
	if err != nil {
		return err
	}

	// Re-booking the same slot replaces the existing reservation.
	var overwriteID *int64
	if option.ReservationID != nil {
		ok, err := tui.RunConfirm(
			fmt.Sprintf("You already booked %s (reservation #%d). Replace it?", option.Time, *option.ReservationID),
			false)
		if err != nil {
			return err
		}
		if !ok {
			fmt.Println(tui.RenderInfo("Booking cancelled."))
			return nil
		}
		overwriteID = option.ReservationID
	}

	participants, err := promptParticipants(option.AvailableParticipants, 1)
	if err != nil {
		return err
	}

	reservation, err := app.Booking.Reserve(ctx, option, participants, viewer, overwriteID)
	if err != nil {
		return fmt.Errorf("booking failed: %w", err)
	}

	fmt.Println()
	fmt.Println(tui.RenderSuccess(fmt.Sprintf("Booked! %s", reservation.Summary())))
	if _, anonymous := viewer.(model.Anonymous); anonymous && reservation.SecurityCode != "" {
		fmt.Println()
		fmt.Printf("%s Security code: %s\n", tui.IconKey, tui.TitleStyle.Render(reservation.SecurityCode))
		fmt.Println(tui.RenderWarning("Keep this code. You need it together with the reservation id to manage this booking."))
		fmt.Println(tui.MutedStyle.Render(fmt.Sprintf("Recover it anytime with: sportbook reservations lookup --id %d --code %s", reservation.ID, reservation.SecurityCode)))
	}
	return nil
}

// pickSlot selects one time slot. A single slot is taken directly; full
// slots are shown but cannot be selected.
func pickSlot(options []model.ActivityOption) (model.ActivityOption, error) {
	if len(options) == 1 {
		if options[0].AvailableParticipants <= 0 {
			return model.ActivityOption{}, fmt.Errorf("the only time slot (%s) is fully booked", options[0].Time)
		}
		fmt.Println(tui.RenderInfo(fmt.Sprintf("Only one time slot: %s", options[0].Time)))
		return options[0], nil
	}

	byTime := make(map[string]model.ActivityOption, len(options))
	selectOptions := make([]tui.SelectOption, 0, len(options))
	anySelectable := false
	for _, o := range options {
		byTime[o.Time] = o
		desc := fmt.Sprintf("%d spots left", o.AvailableParticipants)
		if o.AvailableParticipants <= 0 {
			desc = "fully booked"
		} else {
			anySelectable = true
		}
		if o.ReservationID != nil {
			desc += ", already booked by you"
		}
		selectOptions = append(selectOptions, tui.SelectOption{
			Label:       o.Time,
			Value:       o.Time,
			Description: desc,
			Disabled:    o.AvailableParticipants <= 0,
		})
	}
	if !anySelectable {
		return model.ActivityOption{}, fmt.Errorf("all time slots are fully booked")
	}

	chosen, err := tui.RunSelect("Choose a time:", selectOptions)
	if err != nil {
		return model.ActivityOption{}, err
	}
	return byTime[chosen], nil
}

// promptParticipants asks for the group size within [1, available].
func promptParticipants(available, defaultValue int) (int, error) {
	if available <= 0 {
		return 0, fmt.Errorf("no spots left for this time slot")
	}
	for {
		raw, err := tui.RunInput(
			fmt.Sprintf("Participants (1-%d):", available),
			"group size including you",
			strconv.Itoa(defaultValue))
		if err != nil {
			return 0, err
		}
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 || n > available {
			fmt.Println(tui.RenderError(fmt.Sprintf("Enter a number between 1 and %d.", available)))
			continue
		}
		return n, nil
	}
}
