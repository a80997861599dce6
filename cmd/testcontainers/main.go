package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/localnerve/jobboard/internal/testutil"
)

func main() {
	var showHelp bool
	flag.BoolVar(&showHelp, "h", false, "show help")
	var envFilename string
	flag.StringVar(&envFilename, "f", "", "path to the .env file")
	var withAuthorizer bool
	flag.BoolVar(&withAuthorizer, "authz", false, "also start an Authorizer for the admin routes")
	var withRedis bool
	flag.BoolVar(&withRedis, "redis", false, "also start Redis for rate limiting")
	flag.Parse()

	usage := `
Run the jobboard backing services (MariaDB, optionally Authorizer and Redis) in testcontainers,
configured from the environment variables in the .env file.

Usage:

testcontainers [-h] [-f ENV_FILE_PATH] [-authz] [-redis]

ENV_FILE_PATH: path to the .env file

example
  testcontainers -f /path/to/something/.env -redis
`
	if showHelp {
		fmt.Println(usage)
		return
	}

	if envFilename != "" {
		log.Printf("Loading environment variables from %s\n", envFilename)
		if err := godotenv.Load(envFilename); err != nil {
			log.Fatalf("Failed to load environment variables: %v\n", err)
		}
	} else {
		log.Printf("No environment file specified, using current environment variables\n")
	}

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	started := make(chan *testutil.TestContainers, 1)
	go func() {
		tc, err := testutil.CreateTestContainers(nil, testutil.ContainerOptions{
			Authorizer: withAuthorizer,
			Redis:      withRedis,
		})
		if err != nil {
			log.Fatalf("Failed to create test containers: %v\n", err)
		}
		started <- tc
	}()

	var testContainers *testutil.TestContainers
	select {
	case testContainers = <-started:
		sig := <-sigs
		log.Printf("\nReceived signal: %v, terminating test containers...\n", sig)
	case sig := <-sigs:
		log.Printf("\nReceived signal: %v before startup finished\n", sig)
	}
	if testContainers != nil {
		testContainers.Terminate(nil)
	}
}
