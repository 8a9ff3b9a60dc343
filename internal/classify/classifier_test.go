package classify

import "testing"

func TestClassifyDefaultTaxonomy(t *testing.T) {
	c := New(nil)

	tests := []struct {
		name string
		text string
		want string
	}{
		{
			name: "storage",
			text: "Which storage redundancy option should you use for blob containers?",
			want: "storage",
		},
		{
			name: "compute",
			text: "You need to deploy a virtual machine with high availability.",
			want: "compute",
		},
		{
			name: "networking",
			text: "Configure the network security group to allow traffic on port 443.",
			want: "networking",
		},
		{
			name: "monitoring",
			text: "Set up Azure Monitor alerts for the backup policy.",
			want: "monitoring",
		},
		{
			name: "identity",
			text: "You need to configure RBAC role assignments for users in Azure AD.",
			want: "identity-governance",
		},
		{
			name: "no keyword falls back to default",
			text: "The quick brown fox jumps over the lazy dog.",
			want: "identity-governance",
		},
		{
			name: "empty text falls back to default",
			text: "",
			want: "identity-governance",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := c.Classify(tt.text); got != tt.want {
				t.Errorf("Classify(%q) = %q, want %q", tt.text, got, tt.want)
			}
		})
	}
}

func TestClassifyHighestScoreWins(t *testing.T) {
	c := New(&Taxonomy{
		Domains: []Domain{
			{ID: "monitoring", Name: "Monitoring", Keywords: []string{"monitor", "alert"}},
			{ID: "storage", Name: "Storage", Keywords: []string{"storage"}},
		},
		DefaultDomain: "identity-governance",
	})

	if got := c.Classify("Azure Monitor alert policy"); got != "monitoring" {
		t.Errorf("Classify = %q, want %q", got, "monitoring")
	}
}

func TestClassifyTieBreaksOnTaxonomyOrder(t *testing.T) {
	text := "Deploy the gateway."

	first := New(&Taxonomy{
		Domains: []Domain{
			{ID: "compute", Name: "Compute", Keywords: []string{"gateway"}},
			{ID: "networking", Name: "Networking", Keywords: []string{"gateway"}},
		},
		DefaultDomain: "identity-governance",
	})
	if got := first.Classify(text); got != "compute" {
		t.Errorf("first-listed domain should win the tie, got %q", got)
	}

	swapped := New(&Taxonomy{
		Domains: []Domain{
			{ID: "networking", Name: "Networking", Keywords: []string{"gateway"}},
			{ID: "compute", Name: "Compute", Keywords: []string{"gateway"}},
		},
		DefaultDomain: "identity-governance",
	})
	if got := swapped.Classify(text); got != "networking" {
		t.Errorf("first-listed domain should win the tie, got %q", got)
	}
}

func TestClassifyEmptyTaxonomy(t *testing.T) {
	c := New(&Taxonomy{DefaultDomain: "general"})
	if got := c.Classify("Anything at all."); got != "general" {
		t.Errorf("Classify = %q, want %q", got, "general")
	}
}

func TestDomainName(t *testing.T) {
	c := New(nil)

	if got := c.DomainName("storage"); got != "Implement and manage storage" {
		t.Errorf("DomainName(storage) = %q", got)
	}
	if got := c.DomainName("made-up"); got != "made-up" {
		t.Errorf("unknown id should resolve to itself, got %q", got)
	}
}

func TestDefaultDomainAccessor(t *testing.T) {
	if got := New(nil).DefaultDomain(); got != "identity-governance" {
		t.Errorf("DefaultDomain = %q", got)
	}
}
