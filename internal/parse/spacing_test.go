package parse

import "testing"

func TestFixWordSpacing(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "concatenated word pairs",
			in:   "Youhave an account andthe subscription",
			want: "You have an account and the subscription",
		},
		{
			name: "run together case boundary",
			in:   "deployVirtual machines",
			want: "deploy Virtual machines",
		},
		{
			name: "missing space after punctuation",
			in:   "Create the account.Youneed a container.",
			want: "Create the account. You need a container.",
		},
		{
			name: "parenthesis spacing",
			in:   "use the portal(preview)now",
			want: "use the portal (preview) now",
		},
		{
			name: "abbreviation expansion",
			in:   "The qis about storage",
			want: "The question is about storage",
		},
		{
			name: "whitespace collapse",
			in:   "several   spaced\t\twords here",
			want: "several spaced words here",
		},
		{
			name: "already clean text unchanged",
			in:   "You need to create a new storage account.",
			want: "You need to create a new storage account.",
		},
		{
			name: "empty input",
			in:   "",
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := fixWordSpacing(tt.in); got != tt.want {
				t.Errorf("fixWordSpacing(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestFixWordSpacingPreserveParagraphs(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "blank line separates paragraphs",
			in:   "You have an Azure subscription.\nIt contains a storage account.\n\nYou need to configure backup.",
			want: "You have an Azure subscription. It contains a storage account.\n\nYou need to configure backup.",
		},
		{
			name: "section phrase starts a new paragraph",
			in:   "You have a subscription named Sub1.\nWhat should you do first?",
			want: "You have a subscription named Sub1.\n\nWhat should you do first?",
		},
		{
			name: "continuation lines joined",
			in:   "The account was created\nlast week by an administrator.",
			want: "The account was created last week by an administrator.",
		},
		{
			name: "spacing fixed inside each paragraph",
			in:   "Youneed more storage.\n\nSolution: add   a disk.",
			want: "You need more storage.\n\nSolution: add a disk.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := fixWordSpacingPreserveParagraphs(tt.in); got != tt.want {
				t.Errorf("fixWordSpacingPreserveParagraphs(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
