package domain

import (
	"fmt"
	"regexp"
)

var (
	usZipPattern = regexp.MustCompile(`^\d{5}(?:[-\s]\d{4})?$`)
	caZipPattern = regexp.MustCompile(`^([ABCEGHJKLMNPRSTVXY]\d[ABCEGHJKLMNPRSTVWXYZ]) ?(\d[ABCEGHJKLMNPRSTVWXYZ]\d)$`)
)

// User represents a person who rates movies.
type User struct {
	ID           int64  `db:"id" json:"id"`
	Age          int    `db:"age" json:"age"`
	Gender       string `db:"gender" json:"gender"`
	ZipCode      string `db:"zip_code" json:"zipCode"`
	OccupationID int64  `db:"occupation_id" json:"occupationId"`
}

func (u User) String() string {
	return fmt.Sprintf("(%d), age: %d, gender: %s, zipcode: %s, occupation id: %d",
		u.ID, u.Age, u.Gender, u.ZipCode, u.OccupationID)
}

// Occupation is a named job a user can hold. Names are unique.
type Occupation struct {
	ID   int64  `db:"id" json:"id"`
	Name string `db:"name" json:"name"`
}

func (o Occupation) String() string {
	return fmt.Sprintf("(%d), Name: %s", o.ID, o.Name)
}

// ValidAge reports whether age is acceptable for a user.
func ValidAge(age int) bool {
	return age >= 0
}

// IsUSZipCode matches 12345, 12345-6789 and 12345 6789.
func IsUSZipCode(zip string) bool {
	return usZipPattern.MatchString(zip)
}

// IsCanadianPostalCode matches upper-case postal codes such as A1A 1A1 or A1A1A1.
func IsCanadianPostalCode(zip string) bool {
	return caZipPattern.MatchString(zip)
}

// ValidZipCode accepts either a US zip code or a Canadian postal code.
func ValidZipCode(zip string) bool {
	return IsUSZipCode(zip) || IsCanadianPostalCode(zip)
}
