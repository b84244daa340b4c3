package testdata

import (
	"fmt"
	"strings"

	"github.com/brianvoe/gofakeit/v7"
)

func RandomName() string {
	return gofakeit.AppName()
}

func RandomDescription() string {
	return gofakeit.Sentence(8)
}

func RandomEmail() string {
	return gofakeit.Email()
}

func RandomPhoneNumber() string {
	return "+1" + gofakeit.Numerify("##########")
}

func RandomQuestionBody() string {
	return strings.TrimSuffix(gofakeit.Question(), "?") + "?"
}

func RandomLabel() string {
	return fmt.Sprintf("%s-%s", gofakeit.Company(), gofakeit.LetterN(6))
}
