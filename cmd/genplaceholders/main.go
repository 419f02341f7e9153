package main

import (
	"flag"
	"fmt"
	"os"

	"chosenoffset.com/tuxtown/internal/placeholders"
)

func main() {
	dir := flag.String("dir", "assets", "assets directory to write into")
	flag.Parse()

	fmt.Println("Tuxtown Placeholder Graphics Generator")
	fmt.Println("======================================")
	fmt.Println()

	if err := placeholders.GenerateAndSave(*dir); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Println()
	fmt.Println("Done! Placeholder graphics are ready to use.")
	fmt.Println("Run the game to see your placeholders in action!")
}
