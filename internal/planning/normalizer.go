package planning

// GroupKeySeparator joins a reminder's core description and a split's own
// description in the group key of a composite reminder.
const GroupKeySeparator = ": "

// NormalizeDescription returns the core of a reminder description: when it is
// longer than two characters and ends in a blank followed by one character
// ("Rent A", "Gym 2"), those two characters are dropped.
func NormalizeDescription(desc string) string {
	runes := []rune(desc)
	n := len(runes)
	if n > 2 && runes[n-2] == ' ' {
		return string(runes[:n-2])
	}
	return desc
}

// GroupKey returns the grouping key of one contribution. For a reminder with more
// than one expense split the split's own description is appended, so the sub-expenses
// of one composite reminder stay apart.
func GroupKey(reminderDesc, splitDesc string, expenseSplits int) string {
	core := NormalizeDescription(reminderDesc)
	if expenseSplits > 1 {
		return core + GroupKeySeparator + splitDesc
	}
	return core
}
