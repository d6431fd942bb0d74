// Package anuvad provides a Go client for the anuvad document
// translation service: asynchronous PDF translation between English and
// Gujarati, Hindi or Marathi.
//
// # Translating a document
//
//	client, _ := anuvad.New("https://translate.example.com")
//	f, _ := os.Open("circular.pdf")
//	defer f.Close()
//
//	handle, _ := client.Upload(ctx, anuvad.UploadParams{
//	    Filename:  "circular.pdf",
//	    Size:      info.Size(),
//	    Language:  anuvad.LanguageGujarati,
//	    Direction: anuvad.DirectionToTarget,
//	    Mode:      anuvad.ModeGeneral,
//	}, f)
//
//	watch := client.WatchJob(ctx, handle.JobID)
//	for job := range watch.Updates() {
//	    fmt.Println(job.Progress, job.Phase())
//	}
//	client.SaveArtifact(ctx, handle.JobID, anuvad.ArtifactTranslated, "out.pdf")
//
// # Administration
//
//	client.Login(ctx, "admin", password)
//	report, _ := client.Dashboard(ctx)
//	fmt.Printf("%.1f%% of budget used\n", report.PercentageUsed)
package anuvad
