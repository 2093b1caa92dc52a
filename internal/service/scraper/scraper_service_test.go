package scraper

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"auditorcrawler/internal/domain/model"
	"auditorcrawler/internal/infra/persistence/csvstore"
	"auditorcrawler/internal/service/scraper/param"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// stubCrawler is a deterministic in-memory ChromeCrawler. Field text is
// derived from the last navigated parcel number, so two runs over the
// same identifiers produce identical records.
type stubCrawler struct {
	parcel     string
	failIDs    map[string]bool
	classTexts map[string][]string

	initURL string
	lookups []string
	clicked []string
	evaled  []string
}

func (s *stubCrawler) InitAndNavigate(url string) error {
	s.initURL = url
	return s.Navigate(url)
}

func (s *stubCrawler) Navigate(url string) error {
	s.parcel = url[strings.LastIndex(url, "=")+1:]
	return nil
}

func (s *stubCrawler) ElementText(id string) (string, error) {
	s.lookups = append(s.lookups, id)
	if s.failIDs[id] {
		return "", fmt.Errorf("no element %q", id)
	}
	return s.parcel + "/" + id, nil
}

func (s *stubCrawler) ElementsTextByClass(class string) ([]string, error) {
	texts, ok := s.classTexts[class]
	if !ok {
		return nil, fmt.Errorf("no elements of class %q", class)
	}
	return texts, nil
}

func (s *stubCrawler) Click(id string) error {
	s.clicked = append(s.clicked, id)
	if s.failIDs[id] {
		return fmt.Errorf("no element %q", id)
	}
	return nil
}

func (s *stubCrawler) Eval(js string) error {
	s.evaled = append(s.evaled, js)
	return nil
}

func (s *stubCrawler) Close() {}

func testSite() *param.Site {
	return &param.Site{
		SearchResultsURL:   "http://auditor.test/Results.aspx",
		ParcelURLFormat:    "http://auditor.test/Data.aspx?ParcelID=%s",
		DisclaimerButtonID: "ContentPlaceHolder1_btnDisclaimerAccept",
		PageLoad:           noWait{},
		TabRender:          noWait{},
	}
}

type noWait struct{}

func (noWait) Wait(ctx context.Context) error { return nil }

func newTestService(t *testing.T, crawler *stubCrawler, dir string) ScraperService {
	t.Helper()
	return InitScraperService(crawler, csvstore.NewWindowWriter(dir), nil, testSite(), zap.NewNop())
}

func TestScrapeParcelFullRecord(t *testing.T) {
	crawler := &stubCrawler{}
	service := newTestService(t, crawler, t.TempDir())

	record := service.ScrapeParcel(context.Background(), "80-37-02-05-000")

	require.Equal(t, "80-37-02-05-000", record.ParcelNumber)
	require.NotNil(t, record.Address)
	require.Equal(t, "80-37-02-05-000/"+addressID, *record.Address)
	require.NotNil(t, record.AppraisedValue)
	require.NotNil(t, record.NumStories)
	require.NotNil(t, record.YearBuilt)
	require.NotNil(t, record.NumBedrooms)
	require.NotNil(t, record.NumFullBaths)
	require.NotNil(t, record.NumHalfBaths)
	require.NotNil(t, record.LivingArea)
	require.NotNil(t, record.Basement)
	require.NotNil(t, record.BasementArea)

	// both sub-view switches fired, in order
	require.Equal(t, []string{tabScript(valuationTabToken), tabScript(residentialTabToken)}, crawler.evaled)
}

func TestScrapeParcelMissingAddress(t *testing.T) {
	crawler := &stubCrawler{failIDs: map[string]bool{addressID: true}}
	service := newTestService(t, crawler, t.TempDir())

	record := service.ScrapeParcel(context.Background(), "001")

	require.Nil(t, record.Address)
	require.NotNil(t, record.AppraisedValue)
	require.NotNil(t, record.YearBuilt)
}

func TestScrapeParcelResidentialBatchAllOrNothing(t *testing.T) {
	// the third residential lookup fails: the whole batch nils out and
	// later residential lookups are never attempted
	failing := residentialIDs[2]
	crawler := &stubCrawler{failIDs: map[string]bool{failing: true}}
	service := newTestService(t, crawler, t.TempDir())

	record := service.ScrapeParcel(context.Background(), "002")

	require.Equal(t, "002", record.ParcelNumber)
	require.NotNil(t, record.Address)
	require.NotNil(t, record.AppraisedValue)
	require.Nil(t, record.NumStories)
	require.Nil(t, record.YearBuilt)
	require.Nil(t, record.NumBedrooms)
	require.Nil(t, record.NumFullBaths)
	require.Nil(t, record.NumHalfBaths)
	require.Nil(t, record.LivingArea)
	require.Nil(t, record.Basement)
	require.Nil(t, record.BasementArea)

	for _, id := range residentialIDs[3:] {
		require.NotContains(t, crawler.lookups, id)
	}
}

func TestPrepareSessionDisclaimerMissing(t *testing.T) {
	site := testSite()
	crawler := &stubCrawler{failIDs: map[string]bool{site.DisclaimerButtonID: true}}
	service := newTestService(t, crawler, t.TempDir())

	err := service.PrepareSession(context.Background())

	require.NoError(t, err)
	require.Equal(t, "http://auditor.test/Data.aspx?ParcelID=", crawler.initURL)
	require.Equal(t, []string{site.DisclaimerButtonID}, crawler.clicked)

	// the session stays usable
	record := service.ScrapeParcel(context.Background(), "003")
	require.Equal(t, "003", record.ParcelNumber)
	require.NotNil(t, record.Address)
}

func testParcelNumbers(n int) []string {
	parcelNumbers := make([]string, 0, n)
	for i := 1; i <= n; i++ {
		parcelNumbers = append(parcelNumbers, fmt.Sprintf("%03d", i))
	}
	return parcelNumbers
}

func readCSV(t *testing.T, path string) [][]string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimRight(string(data), "\n"), "\n")
	rows := make([][]string, 0, len(lines))
	for _, line := range lines {
		rows = append(rows, strings.Split(line, ","))
	}
	return rows
}

func TestRunWindowsPartition(t *testing.T) {
	dir := t.TempDir()
	service := newTestService(t, &stubCrawler{}, dir)
	parcelNumbers := testParcelNumbers(23)

	err := service.RunWindows(context.Background(), parcelNumbers, &param.Batch{WindowSize: 10})
	require.NoError(t, err)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 3)

	wantRows := []int{10, 10, 3}
	var covered []string
	for i, offset := range []int{0, 10, 20} {
		rows := readCSV(t, filepath.Join(dir, fmt.Sprintf("housing_data_%d.csv", offset)))
		require.Equal(t, "parcelNumber", rows[0][0])
		require.Len(t, rows[1:], wantRows[i])
		for _, row := range rows[1:] {
			require.Len(t, row, 11)
			covered = append(covered, row[0])
		}
	}

	// every identifier exactly once, in original order
	require.Equal(t, parcelNumbers, covered)
}

func TestRunWindowsResume(t *testing.T) {
	parcelNumbers := testParcelNumbers(23)

	fullDir := t.TempDir()
	err := newTestService(t, &stubCrawler{}, fullDir).
		RunWindows(context.Background(), parcelNumbers, &param.Batch{WindowSize: 10})
	require.NoError(t, err)

	resumeDir := t.TempDir()
	err = newTestService(t, &stubCrawler{}, resumeDir).
		RunWindows(context.Background(), parcelNumbers, &param.Batch{WindowSize: 10, StartOffset: 10})
	require.NoError(t, err)

	entries, err := os.ReadDir(resumeDir)
	require.NoError(t, err)
	require.Len(t, entries, 2)

	for _, offset := range []int{10, 20} {
		name := fmt.Sprintf("housing_data_%d.csv", offset)
		want, err := os.ReadFile(filepath.Join(fullDir, name))
		require.NoError(t, err)
		got, err := os.ReadFile(filepath.Join(resumeDir, name))
		require.NoError(t, err)
		require.Equal(t, want, got)
	}
}

// stubEsClient records the windows mirrored into it and the contexts the
// mirror calls arrive on.
type stubEsClient struct {
	indexed [][]*model.ParcelDoc
	ctxs    []context.Context
	bulkErr error
}

func (s *stubEsClient) CreateIndexWithMapping(ctx context.Context) error { return nil }

func (s *stubEsClient) BulkIndexDocsWithID(ctx context.Context, docs []*model.ParcelDoc) error {
	s.ctxs = append(s.ctxs, ctx)
	if s.bulkErr != nil {
		return s.bulkErr
	}
	s.indexed = append(s.indexed, docs)
	return nil
}

func (s *stubEsClient) CountDocs(ctx context.Context) (int64, error) {
	var n int64
	for _, window := range s.indexed {
		n += int64(len(window))
	}
	return n, nil
}

type runKey struct{}

func TestRunWindowsMirrorsToIndex(t *testing.T) {
	esClient := &stubEsClient{}
	service := InitScraperService(
		&stubCrawler{}, csvstore.NewWindowWriter(t.TempDir()), esClient, testSite(), zap.NewNop())

	ctx := context.WithValue(context.Background(), runKey{}, "run")
	err := service.RunWindows(ctx, testParcelNumbers(23), &param.Batch{WindowSize: 10})
	require.NoError(t, err)

	require.Len(t, esClient.indexed, 3)
	require.Len(t, esClient.indexed[0], 10)
	require.Len(t, esClient.indexed[2], 3)
	require.Equal(t, "001", esClient.indexed[0][0].GetID())

	// mirror calls run on a deadline derived from the run's context
	for _, mirrorCtx := range esClient.ctxs {
		require.Equal(t, "run", mirrorCtx.Value(runKey{}))
		_, hasDeadline := mirrorCtx.Deadline()
		require.True(t, hasDeadline)
	}
}

func TestRunWindowsMirrorFailureDoesNotAbort(t *testing.T) {
	dir := t.TempDir()
	esClient := &stubEsClient{bulkErr: fmt.Errorf("cluster down")}
	service := InitScraperService(
		&stubCrawler{}, csvstore.NewWindowWriter(dir), esClient, testSite(), zap.NewNop())

	err := service.RunWindows(context.Background(), testParcelNumbers(23), &param.Batch{WindowSize: 10})
	require.NoError(t, err)

	// CSV output is unaffected by the mirror being down
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 3)
}

func TestCollectParcelNumbers(t *testing.T) {
	crawler := &stubCrawler{classTexts: map[string][]string{
		listingRowClass:            {"001 123 MAIN ST", "003 5 ELM AVE"},
		listingAlternatingRowClass: {"002 900 OAK DR"},
	}}
	service := newTestService(t, crawler, t.TempDir())

	parcelNumbers, err := service.CollectParcelNumbers(context.Background())
	require.NoError(t, err)
	require.Equal(t, []string{"001", "003", "002"}, parcelNumbers)
}

func TestCollectParcelNumbersListingUnavailable(t *testing.T) {
	service := newTestService(t, &stubCrawler{}, t.TempDir())

	_, err := service.CollectParcelNumbers(context.Background())
	require.Error(t, err)
}
