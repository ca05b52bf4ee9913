// Command pollutionctl is the operator CLI: it applies database migrations,
// manages traffic-authority accounts and prints report statistics.
//
// Usage:
//
//	pollutionctl migrate
//	pollutionctl migrate status
//	pollutionctl account create --email=officer@example.com --name=Officer --role=traffic
//	pollutionctl account set-role --email=officer@example.com --role=admin
//	pollutionctl account list-staff
//	pollutionctl stats
//
// It reads the same configuration as the server.
package main

import (
	"os"

	_ "github.com/joho/godotenv/autoload"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
