package main

import (
	"fmt"
	"os"

	"github.com/irsalhamdi/e-commerce-books/core/identity"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
)

// hashpw prints the bcrypt hash of a password, ready to paste into the
// clients file.
func main() {
	log := logrus.New()
	log.SetOutput(os.Stderr)

	if len(os.Args) != 2 {
		log.Errorf("usage: %s <password>", os.Args[0])
		os.Exit(2)
	}

	h, err := identity.HashPassword(os.Args[1], bcrypt.DefaultCost)
	if err != nil {
		log.Error(err)
		os.Exit(1)
	}
	fmt.Println(h)
}
