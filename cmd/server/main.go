package main

import "pollos-backend/internal/cmd"

func main() {
	cmd.Execute()
}
