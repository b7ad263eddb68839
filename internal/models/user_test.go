package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestComposeName(t *testing.T) {
	assert.Equal(t, "Alice Smith", ComposeName("Alice", "Smith"))
	assert.Equal(t, "Alice Smith", ComposeName("  Alice ", " Smith "))
	assert.Equal(t, "Alice", ComposeName("Alice", ""))
	assert.Equal(t, "Smith", ComposeName("", "Smith"))
	assert.Equal(t, "", ComposeName("", ""))
}

func TestSplitName(t *testing.T) {
	first, last := SplitName("Alice Smith")
	assert.Equal(t, "Alice", first)
	assert.Equal(t, "Smith", last)

	first, last = SplitName("Madonna")
	assert.Equal(t, "Madonna", first)
	assert.Equal(t, "", last)

	// Only the first space splits; the rest stays in the last name.
	first, last = SplitName("Ana Maria de la Cruz")
	assert.Equal(t, "Ana", first)
	assert.Equal(t, "Maria de la Cruz", last)

	first, last = SplitName("  ")
	assert.Equal(t, "", first)
	assert.Equal(t, "", last)
}

func TestUser_SetNameKeepsPartsInSync(t *testing.T) {
	var u User
	u.SetName("Alice Smith")
	assert.Equal(t, "Alice Smith", u.Name)
	assert.Equal(t, "Alice", u.FirstName)
	assert.Equal(t, "Smith", u.LastName)

	// Single-word names leave the existing parts alone.
	u.SetName("Madonna")
	assert.Equal(t, "Madonna", u.Name)
	assert.Equal(t, "Alice", u.FirstName)
	assert.Equal(t, "Smith", u.LastName)
}

func TestUser_SetNameParts(t *testing.T) {
	var u User
	u.SetNameParts("Bob", "Jones")
	assert.Equal(t, "Bob", u.FirstName)
	assert.Equal(t, "Jones", u.LastName)
	assert.Equal(t, "Bob Jones", u.Name)

	u.SetNameParts("Bob", "")
	assert.Equal(t, "Bob", u.Name)
}
