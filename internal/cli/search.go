package cli

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/mithrel/sakura/internal/present"
	"github.com/mithrel/sakura/internal/util"
	"github.com/mithrel/sakura/pkg/api"
)

// searchFlags collects every search switch. Numeric sentinels (-1, 0) mean
// "not set on the command line, fall back to config".
type searchFlags struct {
	limit     int
	offset    int
	sortBy    string
	sortOrder string

	fuzzy          bool
	fuzzyThreshold float64
	boolean        bool
	fields         bool
	dates          bool

	body       bool
	highlight  bool
	scores     bool
	pagination bool

	facetsCSV string
	boosts    []string
	filters   []string
	aggs      []string

	suggestions bool

	since string
	until string

	stream    bool
	batchSize int
	noCache   bool

	parent string
	export string
	output string
	indent bool
}

func newSearchCmd() *cobra.Command {
	var f searchFlags

	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Search notes",
		Long: `Search notes with optional fuzzy matching, boolean operators,
field queries (title:foo), and date ranges (updated_time:[2024-01-01 TO 2024-06-30]).
With no query argument every note matches.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app := getApp(cmd)

			query := "*"
			if len(args) == 1 {
				query = args[0]
			}
			req, err := buildRequest(app.Cfg, query, f)
			if err != nil {
				return err
			}

			notes, err := app.Store.Snapshot(cmd.Context(), f.parent)
			if err != nil {
				return err
			}

			if f.export != "" {
				res, err := app.Engine.Search(notes, req)
				if err != nil {
					return err
				}
				return present.Export(cmd.OutOrStdout(), res, f.export)
			}

			opts := outputOptions(app.Cfg, f.output, f.indent)

			if req.StreamResults {
				stream, err := app.Engine.StreamSearch(notes, req)
				if err != nil {
					return err
				}
				w := present.NewStreamWriter(cmd.OutOrStdout(), opts)
				for {
					batch, ok := stream.Next()
					if !ok {
						break
					}
					if err := w.WriteItems(batch.Items); err != nil {
						return err
					}
				}
				return w.Close()
			}

			res, err := app.Engine.Search(notes, req)
			if err != nil {
				return err
			}
			return renderResult(cmd.Context(), cmd.OutOrStdout(), cmd.ErrOrStderr(), res, opts)
		},
	}

	cmd.Flags().IntVar(&f.limit, "limit", -1, "max results per page")
	cmd.Flags().IntVar(&f.offset, "offset", 0, "results to skip before the page starts")
	cmd.Flags().StringVar(&f.sortBy, "sort-by", "", "sort field: title|created_time|updated_time|relevance")
	cmd.Flags().StringVar(&f.sortOrder, "sort-order", "", "sort order: asc|desc")

	cmd.Flags().BoolVar(&f.fuzzy, "fuzzy", false, "enable fuzzy matching")
	cmd.Flags().Float64Var(&f.fuzzyThreshold, "fuzzy-threshold", 0, "minimum fuzzy similarity (0-1)")
	cmd.Flags().BoolVar(&f.boolean, "boolean", false, "interpret AND/OR/NOT in the query")
	cmd.Flags().BoolVar(&f.fields, "fields", false, "interpret field:value terms in the query")
	cmd.Flags().BoolVar(&f.dates, "dates", false, "interpret field:[start TO end] ranges in the query")

	cmd.Flags().BoolVar(&f.body, "body", false, "include the full body instead of an excerpt")
	cmd.Flags().BoolVar(&f.highlight, "highlight", false, "wrap matched terms in highlight markers")
	cmd.Flags().BoolVar(&f.scores, "scores", false, "include relevance scores on items")
	cmd.Flags().BoolVar(&f.pagination, "pagination", false, "include the pagination block in the result")

	cmd.Flags().StringVar(&f.facetsCSV, "facets", "", "comma-separated fields to facet on")
	cmd.Flags().StringArrayVar(&f.boosts, "boost", nil, "field=multiplier relevance boost (repeatable)")
	cmd.Flags().StringArrayVar(&f.filters, "filter", nil, "field:op:value predicate (repeatable)")
	cmd.Flags().StringArrayVar(&f.aggs, "agg", nil, "name:type:field[:interval] aggregation (repeatable)")

	cmd.Flags().BoolVar(&f.suggestions, "suggestions", false, "include query suggestions")

	cmd.Flags().StringVar(&f.since, "since", "", "only notes updated since (2006-01-02, 3d, 2w, 1mo)")
	cmd.Flags().StringVar(&f.until, "until", "", "only notes updated until (same forms as --since)")

	cmd.Flags().BoolVar(&f.stream, "stream", false, "stream results in batches")
	cmd.Flags().IntVar(&f.batchSize, "batch-size", 0, "batch size when streaming")
	cmd.Flags().BoolVar(&f.noCache, "no-cache", false, "bypass the result cache")

	cmd.Flags().StringVar(&f.parent, "parent", "", "restrict the search to one notebook id")
	cmd.Flags().StringVar(&f.export, "export", "", "export instead of rendering: json|csv|markdown")
	cmd.Flags().StringVar(&f.output, "output", "", "output mode: plain|pretty|json|ndjson")
	cmd.Flags().BoolVar(&f.indent, "indent", false, "indent json output")

	return cmd
}

// buildRequest maps flags onto a SearchRequest, falling back to config for
// anything left unset.
func buildRequest(cfg *viper.Viper, query string, f searchFlags) (api.SearchRequest, error) {
	req := api.SearchRequest{
		Query:     query,
		Limit:     f.limit,
		Offset:    f.offset,
		SortBy:    f.sortBy,
		SortOrder: f.sortOrder,

		FuzzyMatching:          f.fuzzy,
		FuzzyThreshold:         f.fuzzyThreshold,
		EnableBooleanOperators: f.boolean,
		EnableFieldQueries:     f.fields,
		EnableDateQueries:      f.dates,

		IncludeBody:      f.body,
		HighlightMatches: f.highlight,
		IncludeScores:    f.scores,
		ReturnPagination: f.pagination,

		IncludeSuggestions: f.suggestions,

		StreamResults: f.stream,
		BatchSize:     f.batchSize,
	}

	if req.Limit < 0 {
		req.Limit = cfg.GetInt("search.limit")
	}
	if req.SortBy == "" {
		req.SortBy = cfg.GetString("search.sort_by")
	}
	if req.SortOrder == "" {
		req.SortOrder = cfg.GetString("search.sort_order")
	}
	if req.FuzzyThreshold == 0 {
		req.FuzzyThreshold = cfg.GetFloat64("search.fuzzy_threshold")
	}
	if req.BatchSize == 0 {
		req.BatchSize = cfg.GetInt("search.batch_size")
	}
	req.HighlightTags = [2]string{
		cfg.GetString("search.highlight.open"),
		cfg.GetString("search.highlight.close"),
	}
	req.EnableCache = cfg.GetBool("search.cache.enabled") && !f.noCache
	if ttl := cfg.GetString("search.cache.ttl"); ttl != "" {
		if d, err := time.ParseDuration(ttl); err == nil {
			req.CacheTTL = d
		}
	}

	if f.facetsCSV != "" {
		req.IncludeFacets = true
		req.FacetFields = splitCSV(f.facetsCSV)
	}

	for _, b := range f.boosts {
		field, mult, err := parseBoost(b)
		if err != nil {
			return api.SearchRequest{}, err
		}
		if req.BoostFields == nil {
			req.BoostFields = map[string]float64{}
		}
		req.BoostFields[field] = mult
	}

	for _, spec := range f.filters {
		p, err := parsePredicate(spec)
		if err != nil {
			return api.SearchRequest{}, err
		}
		req.Filters = append(req.Filters, p)
	}

	for _, spec := range f.aggs {
		name, agg, err := parseAggregation(spec)
		if err != nil {
			return api.SearchRequest{}, err
		}
		if req.Aggregations == nil {
			req.Aggregations = map[string]api.Aggregation{}
		}
		req.Aggregations[name] = agg
	}

	if f.since != "" || f.until != "" {
		since, until, err := util.NormalizeDateRange(f.since, f.until)
		if err != nil {
			return api.SearchRequest{}, err
		}
		req.Query = fmt.Sprintf("%s updated_time:[%s TO %s]", req.Query, since, until)
		req.EnableDateQueries = true
	}

	return req, nil
}

func parseBoost(spec string) (string, float64, error) {
	field, val, ok := strings.Cut(spec, "=")
	if !ok || field == "" {
		return "", 0, fmt.Errorf("invalid --boost %q, want field=multiplier", spec)
	}
	mult, err := strconv.ParseFloat(val, 64)
	if err != nil {
		return "", 0, fmt.Errorf("invalid --boost %q: %w", spec, err)
	}
	return field, mult, nil
}

func parsePredicate(spec string) (api.FieldPredicate, error) {
	parts := strings.SplitN(spec, ":", 3)
	if len(parts) != 3 || parts[0] == "" || parts[1] == "" {
		return api.FieldPredicate{}, fmt.Errorf("invalid --filter %q, want field:op:value", spec)
	}
	return api.FieldPredicate{Field: parts[0], Operator: parts[1], Value: parts[2]}, nil
}

func parseAggregation(spec string) (string, api.Aggregation, error) {
	parts := strings.SplitN(spec, ":", 4)
	if len(parts) < 3 || parts[0] == "" || parts[1] == "" || parts[2] == "" {
		return "", api.Aggregation{}, fmt.Errorf("invalid --agg %q, want name:type:field[:interval]", spec)
	}
	agg := api.Aggregation{Type: parts[1], Field: parts[2]}
	if len(parts) == 4 {
		agg.Interval = parts[3]
	}
	return parts[0], agg, nil
}

func splitCSV(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// outputOptions resolves the presenter mode, preferring the flag over config.
func outputOptions(cfg *viper.Viper, flag string, indent bool) present.Options {
	name := flag
	if name == "" {
		name = cfg.GetString("output")
	}
	mode, _ := present.ParseMode(name)
	return present.Options{Mode: mode, JSONIndent: indent, Headers: true}
}
