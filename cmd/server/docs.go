package main

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"github.com/LeDuoc95/BE-FEDUU/internal/logger"
)

// generateDocs regenerates docs/ from the handler annotations with swag
func generateDocs() error {
	logger.L().Info("generating swagger docs")
	args := []string{
		"run",
		"github.com/swaggo/swag/cmd/swag@latest",
		"init",
		"-g",
		"cmd/server/main.go",
		"-o",
		"docs",
		"--parseDependency",
		"--parseInternal",
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	cmd := exec.CommandContext(ctx, "go", args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return fmt.Errorf("swag init: %w; stdout: %s; stderr: %s", err, strings.TrimSpace(stdout.String()), strings.TrimSpace(stderr.String()))
	}
	return nil
}
