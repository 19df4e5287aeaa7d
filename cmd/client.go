package main

import (
	"fmt"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
)

var clientEmail string

var clientCmd = &cobra.Command{
	Use:   "client",
	Short: "Manage advisory clients",
}

var clientAddCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Register a new client",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := initStore(cmd.Context())
		if err != nil {
			return err
		}
		defer st.Close()

		client, err := st.CreateClient(cmd.Context(), args[0], clientEmail)
		if err != nil {
			return eris.Wrap(err, "create client")
		}
		fmt.Printf("created client %s (%s)\n", client.Name, client.ID)
		return nil
	},
}

var clientListCmd = &cobra.Command{
	Use:   "list",
	Short: "List registered clients",
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := initStore(cmd.Context())
		if err != nil {
			return err
		}
		defer st.Close()

		clients, err := st.ListClients(cmd.Context())
		if err != nil {
			return eris.Wrap(err, "list clients")
		}
		for _, c := range clients {
			fmt.Printf("%s\t%s\t%s\n", c.ID, c.Name, c.Email)
		}
		return nil
	},
}

func init() {
	clientAddCmd.Flags().StringVar(&clientEmail, "email", "", "client email address")
	clientCmd.AddCommand(clientAddCmd, clientListCmd)
	rootCmd.AddCommand(clientCmd)
}
