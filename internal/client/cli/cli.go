package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/iudanet/roomkeeper/internal/client/api"
	"github.com/iudanet/roomkeeper/internal/client/reconcile"
	"github.com/iudanet/roomkeeper/internal/client/storage/boltdb"
	"github.com/iudanet/roomkeeper/internal/rooms"
)

// Cli объединяет зависимости всех команд
type Cli struct {
	apiClient    *api.Client
	boltStorage  *boltdb.Storage
	roomsService *rooms.Service
	reconciler   *reconcile.Service
}

func New(apiClient *api.Client, boltStorage *boltdb.Storage, roomsService *rooms.Service, reconciler *reconcile.Service) *Cli {
	return &Cli{
		apiClient:    apiClient,
		boltStorage:  boltStorage,
		roomsService: roomsService,
		reconciler:   reconciler,
	}
}

// Run выполняет команду и завершает процесс с кодом 1 при ошибке
func (c *Cli) Run(ctx context.Context, command string, args []string) {
	var err error

	switch command {
	case "rooms":
		err = c.runRooms(ctx, args)
	case "sync":
		err = c.runSync(ctx)
	case "share":
		err = c.runShare(ctx, args)
	case "permission":
		err = c.runPermission(ctx, args)
	case "status":
		err = c.runStatus(ctx)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		PrintUsage()
		os.Exit(1)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// identity описывает пользователя, извлеченного из identity-токена
type identity struct {
	Token    string
	UserID   string
	Username string
}

// requireIdentity читает identity-токен из ROOMKEEPER_TOKEN.
// Подпись здесь не проверяется (это делает сервер), claims нужны
// только чтобы знать, от чьего имени работает CLI.
func requireIdentity() (*identity, error) {
	token := os.Getenv("ROOMKEEPER_TOKEN")
	if token == "" {
		return nil, fmt.Errorf("not authenticated. Set ROOMKEEPER_TOKEN environment variable")
	}

	claims := jwt.MapClaims{}
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(token, claims); err != nil {
		return nil, fmt.Errorf("invalid identity token: %w", err)
	}

	userID, _ := claims["user_id"].(string)
	username, _ := claims["username"].(string)
	if userID == "" {
		return nil, fmt.Errorf("identity token has no user_id claim")
	}

	return &identity{Token: token, UserID: userID, Username: username}, nil
}

func PrintUsage() {
	fmt.Println("RoomKeeper Client")
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  roomkeeper [OPTIONS] COMMAND")
	fmt.Println()
	fmt.Println("Options:")
	fmt.Println("  --version          Show version information")
	fmt.Println("  --server URL       Registry URL (default: http://localhost:8080)")
	fmt.Println("  --db PATH          Path to local cache (default: roomkeeper-client.db)")
	fmt.Println()
	fmt.Println("Authentication:")
	fmt.Println("  Identity token is read from the ROOMKEEPER_TOKEN environment variable.")
	fmt.Println()
	fmt.Println("Commands:")
	fmt.Println("  rooms list                        List rooms from the local cache")
	fmt.Println("  rooms create <name>               Create a new room")
	fmt.Println("  sync                              Reconcile local cache with the registry")
	fmt.Println("  share create <room-id> <perm>     Create a share link (perm: viewer|assist|editor)")
	fmt.Println("  share list <room-id>              List share configurations of a room")
	fmt.Println("  share revoke <share-id>           Deactivate a share (tokens stop working)")
	fmt.Println("  share delete <share-id>           Permanently delete a share")
	fmt.Println("  permission set <room-id> <perm>   Change room guest permission")
	fmt.Println("  status                            Show local cache status")
	fmt.Println()
	fmt.Println("Examples:")
	fmt.Println("  export ROOMKEEPER_TOKEN='eyJhbGciOi...'")
	fmt.Println("  roomkeeper rooms create \"Design Review\"")
	fmt.Println("  roomkeeper sync")
	fmt.Println("  roomkeeper share create b692f5c0-2d88-4aa1-a9e1-13aa6e4976d5 viewer")
	fmt.Println("  roomkeeper permission set b692f5c0-2d88-4aa1-a9e1-13aa6e4976d5 assist")
	fmt.Println("  roomkeeper --server https://rooms.example.com sync")
}

// formatTime форматирует время для вывода пользователю
func formatTime(t time.Time) string {
	if t.IsZero() {
		return "never"
	}
	return t.Local().Format("2006-01-02 15:04:05")
}
