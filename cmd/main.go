package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/aws/aws-sdk-go-v2/config"
	awsdynamodb "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	awsssm "github.com/aws/aws-sdk-go-v2/service/ssm"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"

	"chatterpal/internal/integrations/agent"
	"chatterpal/internal/integrations/paramstore"
	"chatterpal/internal/repository"
	"chatterpal/internal/store"
	"chatterpal/internal/tui"
	"chatterpal/internal/usecase"
)

const defaultSlot = "chatterpal_conversations"

func main() {
	ctx := context.Background()

	// ---- Configuration (read only here) ----
	_ = godotenv.Load()
	agentID := mustEnv("AGENT_ID")
	baseURL := os.Getenv("AGENT_BASE_URL")
	token := os.Getenv("AGENT_TOKEN")
	paramPrefix := os.Getenv("PARAM_PREFIX")
	backend := envOr("STORE_BACKEND", "file")
	slot := envOr("STORE_SLOT", defaultSlot)

	// ---- Agent client ----
	var agentOpts []agent.Option
	if baseURL != "" {
		agentOpts = append(agentOpts, agent.WithBaseURL(baseURL))
	}
	var tokenSource agent.Getter
	if token != "" {
		agentOpts = append(agentOpts, agent.WithToken(token))
	} else {
		cfg, err := config.LoadDefaultConfig(ctx)
		if err != nil {
			slog.Error("failed to load AWS config", "err", err)
			os.Exit(1)
		}
		tokenSource, err = paramstore.New(awsssm.NewFromConfig(cfg))
		if err != nil {
			slog.Error("failed to create SSM client", "err", err)
			os.Exit(1)
		}
	}
	agentClient, err := agent.NewClient(tokenSource, paramPrefix, agentOpts...)
	if err != nil {
		slog.Error("failed to create agent client", "err", err)
		os.Exit(1)
	}

	// ---- Conversation store ----
	var st store.Store
	switch backend {
	case "dynamodb":
		cfg, cfgErr := config.LoadDefaultConfig(ctx)
		if cfgErr != nil {
			slog.Error("failed to load AWS config", "err", cfgErr)
			os.Exit(1)
		}
		st, err = repository.New(awsdynamodb.NewFromConfig(cfg), mustEnv("STATE_TABLE"), slot)
		if err != nil {
			slog.Error("failed to create DynamoDB store", "err", err)
			os.Exit(1)
		}
	case "file":
		st, err = store.NewFileStore(envOr("STORE_PATH", slot+".json"))
		if err != nil {
			slog.Error("failed to create file store", "err", err)
			os.Exit(1)
		}
	default:
		slog.Error("unknown STORE_BACKEND", "backend", backend)
		os.Exit(1)
	}

	// ---- State core + UI ----
	svc, err := usecase.NewChatService(st, agentClient, agentID, slog.Default())
	if err != nil {
		slog.Error("failed to create chat service", "err", err)
		os.Exit(1)
	}
	svc.Load(ctx)

	if _, err := tea.NewProgram(tui.New(svc), tea.WithAltScreen()).Run(); err != nil {
		slog.Error("ui error", "err", err)
		os.Exit(1)
	}
}

func mustEnv(key string) string {
	v := os.Getenv(key)
	if v == "" {
		slog.Error("required environment variable is not set", "key", key)
		os.Exit(1)
	}
	return v
}

func envOr(key, def string) string {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	return v
}
