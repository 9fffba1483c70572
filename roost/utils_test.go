package roost

import (
	"time"
)

type testModel struct {
	Base    `json:"-" bson:",inline" roost:"tests"`
	Value   string    `json:"value" bson:"value"`
	Created time.Time `json:"created-at" bson:"created_at"`
}

var tester = NewTester(nil, &testModel{})
