package main

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"pets-api/internal/client"
)

const defaultAddr = "http://localhost:8080"

func newListCmd(a *app) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List pets from a running server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, err := a.client(addr)
			if err != nil {
				return err
			}
			items, err := c.List(cmd.Context())
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tNAME\tSPECIES\tAGE\tOWNER")
			for _, p := range items {
				age, owner := "-", "-"
				if p.Age != nil {
					age = fmt.Sprint(*p.Age)
				}
				if p.OwnerName != nil {
					owner = *p.OwnerName
				}
				fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\n", *p.ID, p.Name, p.Species, age, owner)
			}
			return w.Flush()
		},
	}
	cmd.Flags().StringVar(&addr, "addr", defaultAddr, "base URL of the server")
	return cmd
}

func newSpeciesCmd(a *app) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "species",
		Short: "Print the number of distinct species on a running server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, err := a.client(addr)
			if err != nil {
				return err
			}
			n, err := c.CountSpecies(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), n)
			return nil
		},
	}
	cmd.Flags().StringVar(&addr, "addr", defaultAddr, "base URL of the server")
	return cmd
}

// client arma el cliente HTTP; el correlation id viaja como request id.
func (a *app) client(addr string) (*client.Client, error) {
	return client.New(addr, 10*time.Second, client.WithRequestID(a.correlationID))
}
