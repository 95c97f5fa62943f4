package main

import (
	"fmt"
	"log"
	"runtime"
	"strings"
	"time"

	"github.com/acrennan/daybook/internal/client"
	"github.com/acrennan/daybook/pkg/libdaybook"
	"github.com/muesli/coral"
	"github.com/pkg/errors"
)

var (
	version  = "dev"
	revision = "none"
	date     = "unknown"

	endpoint   = ""
	token      = ""
	fortune    = false
	page       = 1
	limit      = 10
	slot       = 1
	currentDay = ""
)

func main() {
	c := &coral.Command{
		Use:     "dbc",
		Short:   "Daybook client",
		Version: fmt.Sprintf("%s - build %.7s @ %s - %s", version, revision, date, runtime.Version()),
		Args:    coral.ExactArgs(0),
	}

	configureCmd.Flags().StringVarP(&endpoint, "endpoint", "e", "", "Daybook server endpoint")
	configureCmd.Flags().StringVarP(&token, "token", "t", "", "Bearer token minted by the server")
	c.AddCommand(configureCmd)

	listCmd.Flags().BoolVarP(&fortune, "fortune", "f", false, "Use the fortune collection")
	listCmd.Flags().IntVarP(&page, "page", "p", 1, "Page number")
	listCmd.Flags().IntVarP(&limit, "limit", "l", 10, "Page size")
	c.AddCommand(listCmd)

	addCmd.Flags().BoolVarP(&fortune, "fortune", "f", false, "Use the fortune collection")
	c.AddCommand(addCmd)

	detailCmd.Flags().BoolVarP(&fortune, "fortune", "f", false, "Use the fortune collection")
	c.AddCommand(detailCmd)

	deleteCmd.Flags().BoolVarP(&fortune, "fortune", "f", false, "Use the fortune collection")
	c.AddCommand(deleteCmd)

	randomCmd.Flags().BoolVarP(&fortune, "fortune", "f", false, "Use the fortune collection")
	c.AddCommand(randomCmd)

	todayCmd.Flags().BoolVarP(&fortune, "fortune", "f", false, "Use the fortune collection")
	todayCmd.Flags().StringVarP(&currentDay, "day", "d", "", "Day key (defaults to today)")
	c.AddCommand(todayCmd)

	jotCmd.Flags().BoolVarP(&fortune, "fortune", "f", false, "Use the fortune collection")
	jotCmd.Flags().StringVarP(&currentDay, "day", "d", "", "Day key (defaults to today)")
	jotCmd.Flags().IntVarP(&slot, "slot", "s", 1, "Card slot within the day")
	c.AddCommand(jotCmd)

	if err := c.Execute(); err != nil {
		log.Fatalf("%+v", err)
	}
}

func collection() string {
	if fortune {
		return libdaybook.CollectionFortune
	}
	return libdaybook.CollectionHappiness
}

func dayKey() string {
	if currentDay != "" {
		return currentDay
	}
	return libdaybook.DayKey(time.Now())
}

func connect() (libdaybook.Client, error) {
	cfg, err := client.Load()
	if err != nil {
		return nil, errors.Wrap(err, "could not load config (run `dbc configure` first)")
	}

	c, err := libdaybook.NewDefaultClient(cfg.Endpoint)
	if err != nil {
		return nil, errors.Wrap(err, "could not reach Daybook endpoint")
	}
	c.SetBearerToken(cfg.BearerToken)
	return c, nil
}

func printRecord(r *libdaybook.Record) {
	when := r.CreatedAt
	if formatted, err := libdaybook.FormatDate(r.CreatedAt); err == nil {
		when = formatted
	}

	fmt.Printf("%s  %s\n", when, r.ID)
	if r.Content != "" {
		fmt.Printf("  %s\n", r.Content)
	}
	if len(r.ImageURLs) > 0 {
		fmt.Printf("  images: %s\n", strings.Join(r.ImageURLs, ", "))
	}
	if len(r.VoiceURLs) > 0 {
		fmt.Printf("  voices: %s\n", strings.Join(r.VoiceURLs, ", "))
	}
	if r.Location != nil {
		fmt.Printf("  location: %f,%f\n", r.Location.Lat, r.Location.Lng)
	}
}

var (
	configureCmd = &coral.Command{
		Use:   "configure",
		Short: "Store the endpoint and bearer token used by the other commands",
		Args:  coral.ExactArgs(0),
		RunE: func(_ *coral.Command, _ []string) error {
			if endpoint == "" || token == "" {
				return errors.New("endpoint and token are required")
			}

			c, err := libdaybook.NewDefaultClient(endpoint)
			if err != nil {
				return err
			}
			c.SetBearerToken(token)

			owner, err := c.Owner()
			if err != nil {
				return errors.Wrap(err, "could not verify the token")
			}
			fmt.Println("Connected as " + owner)

			return client.Save(client.Config{
				Endpoint:    endpoint,
				BearerToken: token,
			})
		},
	}

	//
	listCmd = &coral.Command{
		Use:   "list",
		Short: "List records, newest first",
		Args:  coral.ExactArgs(0),
		RunE: func(_ *coral.Command, _ []string) error {
			c, err := connect()
			if err != nil {
				return err
			}

			records, err := c.ListRecords(collection(), page, limit)
			if err != nil {
				return err
			}

			for _, r := range records {
				printRecord(r)
			}
			return nil
		},
	}

	//
	addCmd = &coral.Command{
		Use:   "add <content>",
		Short: "Record a new entry for today",
		Args:  coral.MinimumNArgs(1),
		RunE: func(_ *coral.Command, args []string) error {
			c, err := connect()
			if err != nil {
				return err
			}

			record, err := c.CreateRecord(collection(), libdaybook.RecordParams{
				Content: strings.Join(args, " "),
				DateKey: dayKey(),
			})
			if err != nil {
				return err
			}

			fmt.Println("Recorded " + record.ID)
			return nil
		},
	}

	//
	detailCmd = &coral.Command{
		Use:   "detail <id>",
		Short: "Show one record",
		Args:  coral.ExactArgs(1),
		RunE: func(_ *coral.Command, args []string) error {
			c, err := connect()
			if err != nil {
				return err
			}

			record, err := c.GetRecord(collection(), args[0])
			if err != nil {
				return err
			}

			printRecord(record)
			return nil
		},
	}

	//
	deleteCmd = &coral.Command{
		Use:   "delete <id>",
		Short: "Delete one record",
		Args:  coral.ExactArgs(1),
		RunE: func(_ *coral.Command, args []string) error {
			c, err := connect()
			if err != nil {
				return err
			}
			return c.DeleteRecord(collection(), args[0])
		},
	}

	//
	randomCmd = &coral.Command{
		Use:   "random",
		Short: "Show a randomly picked record",
		Args:  coral.ExactArgs(0),
		RunE: func(_ *coral.Command, _ []string) error {
			c, err := connect()
			if err != nil {
				return err
			}

			record, err := c.RandomRecord(collection())
			if err != nil {
				return err
			}

			printRecord(record)
			return nil
		},
	}

	//
	todayCmd = &coral.Command{
		Use:   "today",
		Short: "Show the day's cards, local drafts merged with the server",
		Args:  coral.ExactArgs(0),
		RunE: func(_ *coral.Command, _ []string) error {
			c, err := connect()
			if err != nil {
				return err
			}

			cache := client.NewDraftCache(client.Drafts(), client.DefaultFlushDelay)
			defer cache.Flush()

			cards, err := client.NewDayView(c, cache, collection()).Cards(dayKey())
			if err != nil {
				return err
			}

			for _, card := range cards {
				state := "clean"
				if card.Dirty {
					state = "draft"
				}
				if card.CloudID == "" && !card.Dirty {
					state = "empty"
				}
				fmt.Printf("%d. [%s] %s\n", card.Order, state, card.Content)
			}
			return nil
		},
	}

	//
	jotCmd = &coral.Command{
		Use:   "jot <content>",
		Short: "Write the day card at the given slot and sync it",
		Args:  coral.MinimumNArgs(1),
		RunE: func(_ *coral.Command, args []string) error {
			c, err := connect()
			if err != nil {
				return err
			}

			cache := client.NewDraftCache(client.Drafts(), client.DefaultFlushDelay)
			defer cache.Flush()

			view := client.NewDayView(c, cache, collection())
			cards, err := view.Cards(dayKey())
			if err != nil {
				return err
			}

			for _, card := range cards {
				if card.Order != slot {
					continue
				}

				card.Content = strings.Join(args, " ")
				card, err = view.Edit(dayKey(), card)
				if err != nil {
					return err
				}

				card, err = view.Save(dayKey(), card)
				if err != nil {
					return err
				}

				fmt.Println("Synced " + card.CloudID)
				return nil
			}
			return errors.Errorf("no card at slot %d", slot)
		},
	}
)
