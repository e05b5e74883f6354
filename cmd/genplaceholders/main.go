package main

import (
	"flag"
	"fmt"
	"os"

	"chosenoffset.com/arcats/internal/placeholders"
)

func main() {
	dir := flag.String("assets", "assets", "directory to write the placeholder assets into")
	flag.Parse()

	fmt.Println("AR Cats Placeholder Asset Generator")
	fmt.Println("===================================")
	fmt.Println()

	if err := placeholders.GenerateAndSave(*dir); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Println()
	fmt.Println("Done! The cat sprite and mesh are ready to use.")
}
