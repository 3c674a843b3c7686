// Package redis connects to Redis and exposes Redis sets as policy blocklists.
//
// Connect retries the initial ping according to Config, which is usually filled
// from REDIS_* environment variables:
//
//	client, err := redis.Connect(ctx, cfg)
//	if err != nil {
//	    return err
//	}
//	defer client.Close()
//
// A Blocklist satisfies policies.Blocklist and can be shared between processes:
//
//	emails, err := redis.NewBlocklist(client, cfg.Key("blocked_emails"),
//	    redis.WithNormalizer(policies.NormalizeEmail))
//	reg := policies.NewRegistrationPolicy(emails, nil)
//
// Lookup failures are returned as errors, never as a denial.
package redis
