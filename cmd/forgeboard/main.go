package main

import "os"

func main() {
	rootCmd.AddCommand(requestCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
