package band

import (
	"github.com/256dpi/flock/roost"
)

var tester = roost.NewTester(nil, &User{})

func testAuthenticator() *Authenticator {
	auth := NewAuthenticator(tester.Store, DefaultPolicy("hen-sparrow-owl"))

	err := auth.EnsureIndexes(nil)
	if err != nil {
		panic(err)
	}

	return auth
}
