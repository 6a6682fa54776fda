package nav

import "skconsole/skadmin"

type LoadSubjectsPageMsg struct {
	Refresh bool
}

// LoadCreateSubjectPageMsg opens the new subject form, Subjects are the
// names already known to the browser.
type LoadCreateSubjectPageMsg struct {
	Subjects []string
}

// RegisterSubjectMsg is published by the new subject form once submitted.
type RegisterSubjectMsg struct {
	Details skadmin.SubjectCreationDetails
}
