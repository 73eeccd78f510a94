package config

import (
	"fmt"
	"testing"
	"time"
)

func TestMustLoad(t *testing.T) {
	cfg := MustLoad("./test_data")

	if cfg.Pg().Host != "localhost" {
		t.Errorf("pg.Host, got: %s, want: %s", cfg.Pg().Host, "localhost")
	}
	if cfg.Pg().Port != 5432 {
		t.Errorf("pg.Port, got: %s, want: %s", fmt.Sprint(cfg.Pg().Port), "5432")
	}
	if cfg.Pg().User != "goblog" {
		t.Errorf("pg.User, got: %s, want: %s", cfg.Pg().User, "goblog")
	}
	if cfg.Pg().Password != "pass" {
		t.Errorf("pg.Password, got: %s, want: %s", cfg.Pg().Password, "pass")
	}
	if cfg.Pg().Dbname != "goblog" {
		t.Errorf("pg.Dbname, got: %s, want: %s", cfg.Pg().Dbname, "goblog")
	}
	if cfg.Public.PostsPerPage != 10 {
		t.Errorf("PostsPerPage, got: %s, want: %s", fmt.Sprint(cfg.Public.PostsPerPage), "10")
	}
	if cfg.Public.HTTPPort != 3001 {
		t.Errorf("HTTPPort, got: %s, want: %s", fmt.Sprint(cfg.Public.HTTPPort), "3001")
	}
	if cfg.SessionTTL() != 7*24*time.Hour {
		t.Errorf("SessionTTL, got: %s, want: %s", fmt.Sprint(cfg.SessionTTL()), "168h")
	}
	if len(cfg.Public.AllowedOrigins) != 1 || cfg.Public.AllowedOrigins[0] != "http://localhost:3000" {
		t.Errorf("AllowedOrigins, got: %v, want: %v", cfg.Public.AllowedOrigins, []string{"http://localhost:3000"})
	}

	if cfg.SessionKey() != "123" {
		t.Errorf("private session_key, got: %s, want: %s", cfg.SessionKey(), "123")
	}
}
