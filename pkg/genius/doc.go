// Package genius provides a client library for the Genius lyrics service.
//
// # Overview
//
// This package implements a Go client for the Genius REST API and the
// public web API behind genius.com. It covers search, the song, artist and
// album resources, the OAuth2 authorization-code flow, and scraping lyrics
// text from rendered song pages. Every call takes a context, returns
// structured errors, and goes through a throttled, retrying transport.
//
// # Installation
//
//	go get github.com/jfmyers9/verses/pkg/genius
//
// # Quick Start
//
// An access token is optional. Without one, every request goes to the
// public web API:
//
//	import "github.com/jfmyers9/verses/pkg/genius"
//
//	client, err := genius.NewClient(genius.Config{
//	    AccessToken: "your-access-token",
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// # Search
//
// The multi search returns sectioned results with a leading "top_hit"
// section:
//
//	resp, err := client.Search().Multi(ctx, "Yesterday The Beatles")
//	for _, section := range resp.Sections {
//	    for _, hit := range section.Hits {
//	        fmt.Println(section.Type, hit.Result.ID, hit.Result.Title)
//	    }
//	}
//
// Hits decode lazily into the typed resources:
//
//	song, err := resp.Sections[0].Hits[0].Song()
//
// # Lyrics
//
// The API never returns lyrics text. The Lyrics service downloads the song
// page and extracts it:
//
//	text, err := client.Lyrics().Fetch(ctx, song.URL)
//
// An empty string with a nil error means the page has no lyrics block.
//
// # Authentication
//
// Genius uses the OAuth2 authorization-code flow:
//
//  1. Send the user to AuthorizeURL
//  2. Read the code from the redirect
//  3. Exchange the code for an access token
//  4. Store and reuse the token
//
// Example:
//
//	authURL, err := client.Auth().AuthorizeURL(state, "me")
//	fmt.Println("Please visit:", authURL)
//
//	code, err := genius.ParseRedirect(redirectedURL, state)
//	token, err := client.Auth().ExchangeCode(ctx, code)
//	// client now uses token.AccessToken
//
// # Error Handling
//
// Non-success responses are returned as *Error values:
//
//	_, err := client.Songs().Get(ctx, id)
//	if genius.IsNotFound(err) {
//	    // no such song
//	}
//	var gErr *genius.Error
//	if errors.As(err, &gErr) && gErr.Temporary() {
//	    // 5xx or 429
//	}
//
// # Configuration
//
// Retries, the delay between requests, timeouts, base URLs (for testing)
// and an optional logger are set through Config:
//
//	client, err := genius.NewClient(genius.Config{
//	    Timeout:   5 * time.Second,
//	    Retries:   2,
//	    SleepTime: 200 * time.Millisecond,
//	    Logger:    myLogger, // Implements genius.Logger interface
//	})
//
// # API Coverage
//
// Currently implemented:
//   - Search (search/multi, search/{type})
//   - Songs (songs/{id})
//   - Artists (artists/{id}, artists/{id}/songs)
//   - Albums (albums/{id}, albums/{id}/tracks, cover_arts)
//   - OAuth2 (oauth/authorize, oauth/token)
//   - Lyrics page scraping
//
// # Genius API Documentation
//
// For more information about the Genius API:
// https://docs.genius.com
package genius
