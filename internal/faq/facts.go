// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package faq answers general library questions through a generative
// completion endpoint. The query is wrapped in a fixed instructional
// preamble built from the library's facts; nothing but the latest user turn
// is forwarded.
package faq

import (
	"fmt"
	"os"

	"go.yaml.in/yaml/v3"
)

// LibraryFacts holds the institutional knowledge injected into the FAQ
// prompt: URLs, timings, policies. Deployments override the defaults with a
// YAML facts file.
type LibraryFacts struct {
	AssistantName string `yaml:"assistant_name"`
	Institution   string `yaml:"institution"`

	Website       string `yaml:"website"`
	OPACURL       string `yaml:"opac_url"`
	EResourcesURL string `yaml:"eresources_url"`
	GDRoomURL     string `yaml:"gdroom_url"`
	HoursURL      string `yaml:"hours_url"`
	HelpdeskEmail string `yaml:"helpdesk_email"`

	WeekdayHours string `yaml:"weekday_hours"`
	WeekendHours string `yaml:"weekend_hours"`

	// FAQ is the list of canned question/answer facts appended to the
	// preamble.
	FAQ []FactEntry `yaml:"faq"`
}

// FactEntry is one canned fact: a short topic and its answer.
type FactEntry struct {
	Topic  string `yaml:"topic"`
	Answer string `yaml:"answer"`
}

// DefaultFacts returns the Bennett University Library facts the widget
// ships with.
func DefaultFacts() LibraryFacts {
	return LibraryFacts{
		AssistantName: "Ashu",
		Institution:   "Bennett University Library",
		Website:       "https://library.bennett.edu.in/",
		OPACURL:       "https://libraryopac.bennett.edu.in/",
		EResourcesURL: "https://bennett.refread.com/#/home",
		GDRoomURL:     "http://10.6.0.121/gdroombooking/",
		HoursURL:      "https://library.bennett.edu.in/index.php/working-hours/",
		HelpdeskEmail: "libraryhelpdesk@bennett.edu.in",
		WeekdayHours:  "8:00 AM to 12:00 AM (midnight)",
		WeekendHours:  "9:00 AM to 5:00 PM (may vary during vacations)",
		FAQ: []FactEntry{
			{Topic: "Borrowing books", Answer: "Use the automated kiosks in the library (see library tutorial for details)."},
			{Topic: "Returning books", Answer: "Use the 24/7 Drop Box outside the library (see library tutorial)."},
			{Topic: "Overdue checks", Answer: "Automated overdue emails are sent, or check via OPAC."},
			{Topic: "Journal articles", Answer: "Accessible 24/7 remotely via the e-resources portal."},
			{Topic: "Printing/Scanning", Answer: "Available at the LRC from 9:00 AM to 5:30 PM. For laptop printing, email the helpdesk for official printouts or visit M-Block Library for other services."},
			{Topic: "Alumni access", Answer: "Alumni can access the LRC for reference."},
			{Topic: "Overdue fines", Answer: "Pay via BU Payment Portal and update library staff."},
			{Topic: "Appeal fines", Answer: "Contact the helpdesk or visit the HelpDesk."},
			{Topic: "Inter Library Loan", Answer: "Available via DELNET, contact the library for details."},
			{Topic: "Non-BU interns", Answer: "Can use the library for reading only."},
			{Topic: "Finding books on shelves", Answer: "Search via OPAC; books have Call Numbers, and shelves are marked (see tutorial)."},
			{Topic: "Snacks in LRC", Answer: "Not allowed, but water bottles are permitted."},
			{Topic: "Drop Box issues", Answer: "Confirm return via auto-generated email; if none, contact the helpdesk."},
			{Topic: "Reserve a book", Answer: "Use the 'Place Hold' feature in OPAC."},
		},
	}
}

// LoadFacts reads a YAML facts file. An empty path returns the defaults;
// fields absent from the file fall back to the defaults so a partial file
// only overrides what it names.
func LoadFacts(path string) (LibraryFacts, error) {
	facts := DefaultFacts()
	if path == "" {
		return facts, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return facts, fmt.Errorf("reading facts file: %w", err)
	}
	if err := yaml.Unmarshal(data, &facts); err != nil {
		return facts, fmt.Errorf("parsing facts file: %w", err)
	}
	return facts, nil
}
