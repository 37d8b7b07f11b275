package domain

import "time"

// SampleConversations returns the fixed read-only demo conversations shown
// while sample mode is on. The declared order is the display order for the
// demo set; callers receive fresh copies and may not rely on shared state.
func SampleConversations() []Conversation {
	return []Conversation{
		{
			ID:    "sample-1",
			Title: "Tell me a joke",
			Messages: MessageList{
				{ID: "s1m1", Role: RoleUser, Content: "Tell me a joke!", Timestamp: sampleTime("2026-02-24T10:00:00Z")},
				{ID: "s1m2", Role: RoleAssistant, Content: "Why did the scarecrow win an award? Because he was outstanding in his field! But seriously, that joke is a classic for a reason. Got any topics you want me to riff on?", Timestamp: sampleTime("2026-02-24T10:00:30Z")},
				{ID: "s1m3", Role: RoleUser, Content: "That was great! How about a programming joke?", Timestamp: sampleTime("2026-02-24T10:01:00Z")},
				{ID: "s1m4", Role: RoleAssistant, Content: "A SQL query walks into a bar, walks up to two tables and asks... \"Can I join you?\" Classic developer humor right there. The best part is watching non-programmers try to figure out why it is funny.", Timestamp: sampleTime("2026-02-24T10:01:30Z")},
			},
			CreatedAt: sampleTime("2026-02-24T10:00:00Z"),
			UpdatedAt: sampleTime("2026-02-24T10:01:30Z"),
		},
		{
			ID:    "sample-2",
			Title: "Need some advice",
			Messages: MessageList{
				{ID: "s2m1", Role: RoleUser, Content: "I need advice about starting a new hobby.", Timestamp: sampleTime("2026-02-24T08:00:00Z")},
				{ID: "s2m2", Role: RoleAssistant, Content: "That is awesome that you are looking to pick up a new hobby! What kind of things interest you? Are you more into creative stuff like painting or music, something physical like hiking or rock climbing, or maybe something more cerebral like chess or coding? Knowing what excites you will help me suggest the perfect fit.", Timestamp: sampleTime("2026-02-24T08:00:30Z")},
				{ID: "s2m3", Role: RoleUser, Content: "I think something creative. I have always been curious about photography.", Timestamp: sampleTime("2026-02-24T08:01:00Z")},
				{ID: "s2m4", Role: RoleAssistant, Content: "Photography is a fantastic choice! Here is what I would suggest to get started:\n\n**Start with your phone** -- modern smartphones have amazing cameras, so you do not need expensive gear right away.\n\n**Learn the basics** -- understand composition (rule of thirds), lighting (golden hour is your best friend), and perspective.\n\n**Practice daily** -- even taking one intentional photo a day builds your eye for interesting shots.\n\n**Join a community** -- there are great photography groups online where you can share work and get feedback.\n\nThe best part about photography is that it makes you notice beauty in everyday things you would normally walk right past.", Timestamp: sampleTime("2026-02-24T08:01:30Z")},
			},
			CreatedAt: sampleTime("2026-02-24T08:00:00Z"),
			UpdatedAt: sampleTime("2026-02-24T08:01:30Z"),
		},
		{
			ID:    "sample-3",
			Title: "How is your day going?",
			Messages: MessageList{
				{ID: "s3m1", Role: RoleUser, Content: "Hey! How is your day going?", Timestamp: sampleTime("2026-02-24T11:00:00Z")},
				{ID: "s3m2", Role: RoleAssistant, Content: "Hey there! Thanks for asking -- I am doing great! I have been having interesting conversations all day, which is basically my favorite thing. How about you? What is going on in your world today?", Timestamp: sampleTime("2026-02-24T11:00:30Z")},
			},
			CreatedAt: sampleTime("2026-02-24T11:00:00Z"),
			UpdatedAt: sampleTime("2026-02-24T11:00:30Z"),
		},
	}
}

func sampleTime(s string) time.Time {
	t, _ := time.Parse(time.RFC3339, s)
	return t
}
