package domain

import "strings"

// Templates holds the configurable announcement texts. Placeholders use the
// {name} form: {time}, {date}, {day}, {nickname}, {bot_nick}, {room}, {tz}.
type Templates struct {
	Welcome     string
	UserWelcome string
	Hourly      string
}

// RenderTemplate substitutes the given placeholder values into a template.
// Placeholders without a value are left untouched.
func RenderTemplate(template string, vars map[string]string) string {
	pairs := make([]string, 0, len(vars)*2)
	for name, value := range vars {
		pairs = append(pairs, "{"+name+"}", value)
	}

	return strings.NewReplacer(pairs...).Replace(template)
}
