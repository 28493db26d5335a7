// internal/domain/progress/documents.go
package progress

// RequiredDocument is one entry of an application's document checklist.
type RequiredDocument struct {
	Name        string
	Description string
}

var mission180Documents = []RequiredDocument{
	{Name: "Photo ID", Description: "Government issued photo identification"},
	{Name: "Proof of Income", Description: "Last 2 pay stubs or income verification"},
	{Name: "Social Security Card", Description: "Original or certified copy"},
	{Name: "Birth Certificates", Description: "For all household members"},
	{Name: "Landlord References", Description: "Previous landlord contact information"},
	{Name: "Bank Statements", Description: "Last 2 months of bank statements"},
}

var documentsByType = map[string][]RequiredDocument{
	DefaultApplicationType: mission180Documents,
}

// RequiredDocumentsFor returns the checklist seeded for an application type.
// Unknown types fall back to the default program's checklist.
func RequiredDocumentsFor(applicationType string) []RequiredDocument {
	docs, ok := documentsByType[applicationType]
	if !ok {
		docs = documentsByType[DefaultApplicationType]
	}
	out := make([]RequiredDocument, len(docs))
	copy(out, docs)
	return out
}

// DocumentNames flattens a checklist to its names, preserving order.
func DocumentNames(docs []RequiredDocument) []string {
	names := make([]string, len(docs))
	for i, d := range docs {
		names[i] = d.Name
	}
	return names
}

// NewTracker returns the initial state of a freshly submitted application.
func NewTracker(applicationType string) Tracker {
	t := Tracker{
		Status:             StatusSubmitted,
		RequiredDocuments:  DocumentNames(RequiredDocumentsFor(applicationType)),
		CompletedDocuments: []string{},
	}
	t.ProgressPercentage = Compute(t)
	return t
}
