package main

import (
	"fmt"
	"log"
	"os"

	"golang.org/x/crypto/bcrypt"
)

// Small helper for operators: prints the bcrypt hash of a password so an
// account can be fixed up directly in the database.
func main() {
	if len(os.Args) < 2 {
		log.Fatal("Usage: hashgen <password>")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(os.Args[1]), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("Failed to hash password: %v", err)
	}

	fmt.Println(string(hash))
}
