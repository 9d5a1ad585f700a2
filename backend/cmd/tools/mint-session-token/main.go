// mint-session-token signs a session token the way the identity provider
// does, for local development against a running API.
package main

import (
	"flag"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/aicom-dev/aicom/shared/config"
	"github.com/aicom-dev/aicom/shared/domain"
	"github.com/aicom-dev/aicom/shared/identity"
)

func main() {
	var (
		configFolder string
		id           string
		email        string
		name         string
		admin        bool
		ttl          time.Duration
	)
	flag.StringVar(&configFolder, "config_folder", "config", "path to folder with configs")
	flag.StringVar(&id, "id", "", "user id, random when empty")
	flag.StringVar(&email, "email", "dev@example.com", "email claim")
	flag.StringVar(&name, "name", "dev", "display name claim")
	flag.BoolVar(&admin, "admin", false, "admin claim")
	flag.DurationVar(&ttl, "ttl", 24*time.Hour, "token lifetime")
	flag.Parse()

	cfg := config.MustLoad(configFolder)

	userId := uuid.New()
	if id != "" {
		parsed, err := uuid.Parse(id)
		if err != nil {
			log.Fatalf("invalid id: %v", err)
		}
		userId = parsed
	}

	token, err := identity.NewIssuer(cfg.SessionKey(), ttl).NewToken(domain.User{
		Id:          userId,
		Email:       email,
		DisplayName: name,
		Admin:       admin,
	})
	if err != nil {
		log.Fatalf("Failed to mint session token: %v", err)
	}

	fmt.Println("user id:", userId)
	fmt.Println()
	fmt.Println("Sign in with:")
	fmt.Printf("curl -X POST -H 'Content-Type: application/json' -d '{\"token\":\"%s\"}' localhost:8080/v1/auth/login\n", token)
}
