package main

import (
	"fmt"
	"io"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/c360studio/semtax/export"
	"github.com/c360studio/semtax/reasoner"
	"github.com/c360studio/semtax/resource"
)

func absDir(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("resolve %s: %w", path, err)
	}
	return filepath.Dir(abs), nil
}

// loadReasoner builds the ontology from the configured documents and wraps
// it in a reasoner. No rules are run.
func loadReasoner(cmd *cobra.Command, flags *globalFlags) (*reasoner.Reasoner, error) {
	app, err := setup(cmd, flags)
	if err != nil {
		return nil, err
	}
	docs, err := app.Documents(nil)
	if err != nil {
		return nil, err
	}
	o, err := app.LoadOntology(flags.iri, docs)
	if err != nil {
		return nil, err
	}
	return app.Reasoner(o), nil
}

// show renders a resource for terminal output.
func show(r resource.Resource) string {
	if r.IsURI() {
		return r.IRI()
	}
	return r.String()
}

func printResources(w io.Writer, rs []resource.Resource) {
	for _, r := range rs {
		fmt.Fprintln(w, show(r))
	}
}

func reasonCmd(flags *globalFlags) *cobra.Command {
	var (
		format  string
		profile string
		rules   []string
		rounds  int
	)

	cmd := &cobra.Command{
		Use:   "reason [documents...]",
		Short: "Run the inference rules and export the result",
		Long: `Reason loads the ontology documents (the configured patterns, or the
given paths), runs the inference rules to a fixpoint and writes the
result as RDF to stdout. Results are saved to the fact store and
published to NATS when those are configured.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := setup(cmd, flags)
			if err != nil {
				return err
			}
			if format != "" {
				app.cfg.Export.Format = format
			}
			if profile != "" {
				app.cfg.Export.Profile = profile
			}
			if len(rules) > 0 {
				app.cfg.Reasoner.Rules = rules
			}
			if rounds > 0 {
				app.cfg.Reasoner.MaxRounds = rounds
			}
			if err := app.cfg.Validate(); err != nil {
				return fmt.Errorf("invalid configuration: %w", err)
			}

			docs, err := app.Documents(args)
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			if err := app.Connect(ctx); err != nil {
				return err
			}
			defer app.Close(ctx)

			_, err = app.Reason(ctx, flags.iri, docs)
			return err
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "", "Output format (turtle, ntriples, jsonld)")
	cmd.Flags().StringVarP(&profile, "profile", "p", "", "Export profile (asserted, inferred, all)")
	cmd.Flags().StringSliceVar(&rules, "rule", nil, "Run only the named rules (repeatable)")
	cmd.Flags().IntVar(&rounds, "max-rounds", 0, "Maximum number of reasoning rounds")
	return cmd
}

// queries maps query names to closure operations.
var queries = map[string]func(*reasoner.Reasoner, resource.Resource) []resource.Resource{
	"subclasses":            (*reasoner.Reasoner).SubClassesOf,
	"superclasses":          (*reasoner.Reasoner).SuperClassesOf,
	"equivalent-classes":    (*reasoner.Reasoner).EquivalentClassesOf,
	"disjoint-classes":      (*reasoner.Reasoner).DisjointClassesWith,
	"subproperties":         (*reasoner.Reasoner).SubPropertiesOf,
	"superproperties":       (*reasoner.Reasoner).SuperPropertiesOf,
	"equivalent-properties": (*reasoner.Reasoner).EquivalentPropertiesOf,
	"disjoint-properties":   (*reasoner.Reasoner).DisjointPropertiesWith,
	"inverse-properties":    (*reasoner.Reasoner).InversePropertiesOf,
	"same-individuals":      (*reasoner.Reasoner).SameIndividualsOf,
	"different-individuals": (*reasoner.Reasoner).DifferentIndividualsOf,
	"members":               (*reasoner.Reasoner).MembersOf,
	"chain-steps":           (*reasoner.Reasoner).ChainSteps,
}

// entailments maps relation names to entailment checks.
var entailments = map[string]func(*reasoner.Reasoner, resource.Resource, resource.Resource) bool{
	"subclass-of":         (*reasoner.Reasoner).IsSubClassOf,
	"superclass-of":       (*reasoner.Reasoner).IsSuperClassOf,
	"equivalent-class":    (*reasoner.Reasoner).IsEquivalentClassOf,
	"disjoint-class":      (*reasoner.Reasoner).IsDisjointClassWith,
	"subproperty-of":      (*reasoner.Reasoner).IsSubPropertyOf,
	"superproperty-of":    (*reasoner.Reasoner).IsSuperPropertyOf,
	"equivalent-property": (*reasoner.Reasoner).IsEquivalentPropertyOf,
	"disjoint-property":   (*reasoner.Reasoner).IsDisjointPropertyWith,
	"inverse-of":          (*reasoner.Reasoner).IsInversePropertyOf,
	"same-as":             (*reasoner.Reasoner).IsSameIndividualAs,
	"different-from":      (*reasoner.Reasoner).IsDifferentIndividualFrom,
	"member-of":           (*reasoner.Reasoner).IsMemberOf,
}

// pairChecks maps relation names to consistency checks over two terms.
var pairChecks = map[string]func(*reasoner.Checker, resource.Resource, resource.Resource) bool{
	"subclass-of":            (*reasoner.Checker).CanSubClassOf,
	"equivalent-class":       (*reasoner.Checker).CanEquivalentClass,
	"disjoint-with":          (*reasoner.Checker).CanDisjointWith,
	"subproperty-of":         (*reasoner.Checker).CanSubPropertyOf,
	"equivalent-property":    (*reasoner.Checker).CanEquivalentProperty,
	"property-disjoint-with": (*reasoner.Checker).CanPropertyDisjointWith,
	"inverse-of":             (*reasoner.Checker).CanInverseOf,
	"same-as":                (*reasoner.Checker).CanSameAs,
	"different-from":         (*reasoner.Checker).CanDifferentFrom,
	"class-type":             (*reasoner.Checker).CanClassType,
}

// tripleChecks maps relation names to consistency checks over an assertion.
var tripleChecks = map[string]func(*reasoner.Checker, resource.Resource, resource.Resource, resource.Resource) bool{
	"assert":            (*reasoner.Checker).CanAssert,
	"negative-assert":   (*reasoner.Checker).CanNegativeAssert,
	"transitive-assert": (*reasoner.Checker).CanTransitiveAssert,
}

func names[V any](m map[string]V) string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return strings.Join(out, ", ")
}

func queryCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "query <relation> <iri>",
		Short: "List the closure of a term",
		Long:  "Query lists every term related to <iri>. Relations: " + names(queries),
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			fn, ok := queries[args[0]]
			if !ok {
				return fmt.Errorf("unknown relation %q (valid: %s)", args[0], names(queries))
			}
			r, err := loadReasoner(cmd, flags)
			if err != nil {
				return err
			}
			printResources(cmd.OutOrStdout(), fn(r, resource.NewURI(args[1])))
			return nil
		},
	}
}

func isCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "is <relation> <a> <b>",
		Short: "Report whether a relation is entailed",
		Long:  "Is prints true when <a> <relation> <b> is entailed. Relations: " + names(entailments),
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			fn, ok := entailments[args[0]]
			if !ok {
				return fmt.Errorf("unknown relation %q (valid: %s)", args[0], names(entailments))
			}
			r, err := loadReasoner(cmd, flags)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), fn(r, resource.NewURI(args[1]), resource.NewURI(args[2])))
			return nil
		},
	}
}

func checkCmd(flags *globalFlags) *cobra.Command {
	var literal, datatype string

	cmd := &cobra.Command{
		Use:   "check <relation> <a> <b> [<c>]",
		Short: "Report whether a new axiom would keep the ontology consistent",
		Long: `Check prints true when adding the axiom leaves the ontology consistent.

Pair relations: ` + names(pairChecks) + `
Assertion relations (subject property object): ` + names(tripleChecks) + `

For assertion relations, --literal replaces the object with a literal.`,
		Args: cobra.RangeArgs(3, 4),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := loadReasoner(cmd, flags)
			if err != nil {
				return err
			}
			c := r.Checker()
			a, b := resource.NewURI(args[1]), resource.NewURI(args[2])

			if fn, ok := pairChecks[args[0]]; ok {
				if len(args) != 3 {
					return fmt.Errorf("%s takes two terms", args[0])
				}
				fmt.Fprintln(cmd.OutOrStdout(), fn(c, a, b))
				return nil
			}
			if fn, ok := tripleChecks[args[0]]; ok {
				var o resource.Resource
				switch {
				case cmd.Flags().Changed("literal"):
					o = resource.NewTypedLiteral(literal, datatype)
				case len(args) == 4:
					o = resource.NewURI(args[3])
				default:
					return fmt.Errorf("%s needs an object or --literal", args[0])
				}
				fmt.Fprintln(cmd.OutOrStdout(), fn(c, a, b, o))
				return nil
			}
			return fmt.Errorf("unknown relation %q (valid: %s, %s)", args[0], names(pairChecks), names(tripleChecks))
		},
	}

	cmd.Flags().StringVar(&literal, "literal", "", "Literal object value")
	cmd.Flags().StringVar(&datatype, "datatype", "http://www.w3.org/2001/XMLSchema#string", "Literal datatype IRI")
	return cmd
}

func keysCmd(flags *globalFlags) *cobra.Command {
	var partial bool

	cmd := &cobra.Command{
		Use:   "keys <class>",
		Short: "List the key values of a keyed class's members",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := loadReasoner(cmd, flags)
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			for _, kv := range r.KeyValuesOf(resource.NewURI(args[0]), partial) {
				parts := make([]string, 0, len(kv.Keys))
				for _, k := range kv.Keys {
					if k.Missing {
						parts = append(parts, show(k.Property)+"=?")
						continue
					}
					values := make([]string, len(k.Values))
					for i, v := range k.Values {
						values[i] = show(v)
					}
					parts = append(parts, show(k.Property)+"="+strings.Join(values, ","))
				}
				fmt.Fprintf(w, "%s\t%s\n", show(kv.Member), strings.Join(parts, "\t"))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&partial, "partial", false, "Include members missing a key value")
	return cmd
}

func storeCmd(flags *globalFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "store",
		Short: "Inspect the fact store",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List stored ontologies",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := setup(cmd, flags)
			if err != nil {
				return err
			}
			store, err := app.OpenFactStore()
			if err != nil {
				return err
			}
			defer store.Close()
			iris, err := store.List(cmd.Context())
			if err != nil {
				return err
			}
			for _, iri := range iris {
				fmt.Fprintln(cmd.OutOrStdout(), iri)
			}
			return nil
		},
	})

	var profile string
	showCmd := &cobra.Command{
		Use:   "show <iri>",
		Short: "Export a stored ontology",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := setup(cmd, flags)
			if err != nil {
				return err
			}
			if profile != "" {
				if _, err := export.ParseProfile(profile); err != nil {
					return err
				}
				app.cfg.Export.Profile = profile
			}
			store, err := app.OpenFactStore()
			if err != nil {
				return err
			}
			defer store.Close()
			o, err := store.Load(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return app.Export(o, "")
		},
	}
	showCmd.Flags().StringVarP(&profile, "profile", "p", "", "Export profile (asserted, inferred, all)")
	cmd.AddCommand(showCmd)

	cmd.AddCommand(&cobra.Command{
		Use:   "delete <iri>",
		Short: "Delete a stored ontology",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := setup(cmd, flags)
			if err != nil {
				return err
			}
			store, err := app.OpenFactStore()
			if err != nil {
				return err
			}
			defer store.Close()
			return store.Delete(cmd.Context(), args[0])
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "clear-inferences <iri>",
		Short: "Retract every reasoner-derived entry of a stored ontology",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := setup(cmd, flags)
			if err != nil {
				return err
			}
			store, err := app.OpenFactStore()
			if err != nil {
				return err
			}
			defer store.Close()
			o, err := store.Load(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			n := o.ClearInferences()
			if err := store.Save(cmd.Context(), o); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "retracted %d entries from %s\n", n, args[0])
			return nil
		},
	})

	return cmd
}
