package password

import "golang.org/x/crypto/bcrypt"

func init() {
	cost = bcrypt.MinCost
}
