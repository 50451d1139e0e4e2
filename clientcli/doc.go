// Package clientcli provides a client library for facerelay servers.
//
// It covers every endpoint: uploading observations with or without a frame,
// reading the latest record and its file, managing the pending name and the
// detector pacing intervals. Profiles stored in ~/.facerelay/config.yaml
// name the servers a user talks to.
//
// # Basic Usage
//
//	client, err := clientcli.New(&clientcli.Config{Endpoint: "http://localhost:8000"})
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	rec, err := client.Upload(ctx, clientcli.UploadOptions{
//		Age:            "31",
//		Gender:         "female",
//		Mood:           "happy",
//		RecognizeState: "true",
//		RecognizedName: "Alice",
//		FilePath:       "./image.png",
//	})
//
//	data, err := client.LatestData(ctx)
//	if errors.Is(err, clientcli.ErrNotFound) {
//		// nothing uploaded yet
//	}
//
// # Profile Configuration
//
//	configFile, err := clientcli.LoadConfigFile(clientcli.DefaultConfigPath())
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	profile, err := configFile.GetProfile("kiosk")
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	client, err := clientcli.New(clientcli.ConfigFromProfile(profile))
//
// # Output Formatting
//
//	formatter := clientcli.NewFormatter(jsonOutput, quiet)
//	formatter.FormatData(os.Stdout, data)
package clientcli
