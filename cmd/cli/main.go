package main

import (
	"ShopAssist/internal/api/chat"
	chatService "ShopAssist/internal/api/chat/service"
	"ShopAssist/internal/config"
	"ShopAssist/internal/entity"
	jwtPkg "ShopAssist/pkg/jwt"
	"ShopAssist/pkg/log"
	"ShopAssist/pkg/nlp"
	"ShopAssist/pkg/utils"
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/gookit/color"
	"github.com/joho/godotenv"
	jsoniter "github.com/json-iterator/go"
	"github.com/olekukonko/tablewriter"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	flagJSON    bool
	flagTimeout time.Duration
)

func main() {
	_ = godotenv.Load()

	root := &cobra.Command{
		Use:           "shopassist",
		Short:         "Talk to the classification service and the chat dispatcher from a terminal",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().BoolVar(&flagJSON, "json", false, "print raw JSON instead of tables")
	root.PersistentFlags().DurationVar(&flagTimeout, "timeout", 15*time.Second, "overall request timeout")

	root.AddCommand(parseCmd(), classifyCmd(), chatCmd(), tokenCmd())

	if err := root.Execute(); err != nil {
		color.Red.Println("Error:", err)
		os.Exit(1)
	}
}

func newClient() (*nlp.Client, *logrus.Logger, error) {
	logger := log.NewLogger()
	logger.SetLevel(logrus.WarnLevel)

	cfg, err := nlp.LoadConfig()
	if err != nil {
		return nil, nil, err
	}

	client, err := config.NewNLPClient(logger, cfg)
	if err != nil {
		return nil, nil, err
	}
	return client, logger, nil
}

func parseCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "parse <text>",
		Short: "Run a full linguistic parse",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, _, err := newClient()
			if err != nil {
				return err
			}
			defer client.Close()

			ctx, cancel := context.WithTimeout(cmd.Context(), flagTimeout)
			defer cancel()

			result, err := client.ParseText(ctx, strings.Join(args, " "))
			if err != nil {
				return err
			}

			if flagJSON {
				return printJSON(result)
			}

			printIntent(result.Intent)
			printEntities(result.Entities)
			if len(result.NounChunks) > 0 {
				fmt.Println("Noun chunks:", strings.Join(result.NounChunks, " | "))
			}
			fmt.Println("Tokens:", strings.Join(result.Tokens, " "))
			return nil
		},
	}
}

func classifyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "classify <text>",
		Short: "Classify intent only",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, _, err := newClient()
			if err != nil {
				return err
			}
			defer client.Close()

			ctx, cancel := context.WithTimeout(cmd.Context(), flagTimeout)
			defer cancel()

			intent, err := client.ClassifyText(ctx, strings.Join(args, " "))
			if err != nil {
				return err
			}

			if flagJSON {
				return printJSON(intent)
			}
			printIntent(*intent)
			return nil
		},
	}
}

func chatCmd() *cobra.Command {
	var sessionID, userID string

	cmd := &cobra.Command{
		Use:   "chat <text>",
		Short: "Send one message through the dispatcher",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, logger, err := newClient()
			if err != nil {
				return err
			}
			defer client.Close()

			chatCfg, err := chatService.LoadChatConfig()
			if err != nil {
				return err
			}

			u := utils.New()
			if sessionID == "" {
				sessionID = u.NewSessionID()
			}

			turn := chat.DialogueTurn{
				SessionID: sessionID,
				UserID:    userID,
				Text:      u.NormalizeText(strings.Join(args, " ")),
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), flagTimeout)
			defer cancel()

			result := chatService.NewChatService(logger, client, chatCfg).HandleMessage(ctx, turn)

			if flagJSON {
				return printJSON(chat.NewMessageResponse(turn, result))
			}

			if result.Degraded() {
				color.Yellow.Printf("[degraded: %s] ", result.FailureKind)
			}
			color.Green.Println(result.Reply)
			if result.Query != "" {
				fmt.Println("Query:", result.Query)
			}
			if !result.Metadata.IsEmpty() {
				printIntent(result.Metadata.Intent)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&sessionID, "session", "", "session id (random when empty)")
	cmd.Flags().StringVar(&userID, "user", "cli", "user id")
	return cmd
}

func tokenCmd() *cobra.Command {
	var userID, email, username string
	var ttl time.Duration

	cmd := &cobra.Command{
		Use:   "token",
		Short: "Mint a development access token (needs JWT_ACCESS_TOKEN_SECRET)",
		RunE: func(cmd *cobra.Command, args []string) error {
			token, exp, err := jwtPkg.Sign(entity.UserLoginData{
				ID:       userID,
				Email:    email,
				Username: username,
			}, ttl)
			if err != nil {
				return err
			}

			fmt.Println(token)
			color.Gray.Printf("expires %s\n", time.Unix(exp, 0).Format(time.RFC3339))
			return nil
		},
	}

	cmd.Flags().StringVar(&userID, "user", "dev-user", "user id claim")
	cmd.Flags().StringVar(&email, "email", "dev@example.com", "email claim")
	cmd.Flags().StringVar(&username, "username", "dev", "username claim")
	cmd.Flags().DurationVar(&ttl, "ttl", 24*time.Hour, "token lifetime")
	return cmd
}

func printIntent(intent nlp.Intent) {
	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"Intent", "Action", "Confidence"})
	table.Append([]string{intent.Name, intent.Action, fmt.Sprintf("%.2f", intent.Confidence)})
	table.Render()
}

func printEntities(entities []nlp.Entity) {
	if len(entities) == 0 {
		fmt.Println("No entities")
		return
	}

	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"Entity", "Label", "Span"})
	for _, e := range entities {
		table.Append([]string{e.Text, e.Label, fmt.Sprintf("%d-%d", e.Start, e.End)})
	}
	table.Render()
}

func printJSON(v interface{}) error {
	data, err := jsoniter.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(data))
	return nil
}
