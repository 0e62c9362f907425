// Fundviz - Crowdfunding Marketplace Analytics and Network Visualization
// Copyright 2026 Fundviz Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/fundviz/fundviz

package models

import "time"

// Bounty statuses as recorded in idx_status. The set mirrors the lifecycle
// the marketplace contract walks through; "_" is the pad token used by the
// status-progression visualization, not a real status.
const (
	StatusOpen      = "open"
	StatusStarted   = "started"
	StatusSubmitted = "submitted"
	StatusDone      = "done"
	StatusExpired   = "expired"
	StatusCancelled = "cancelled"
)

// NetworkMainnet is the only network the visualization pipelines scan.
// Testnet and staging records share the same tables but are excluded.
const NetworkMainnet = "mainnet"

// Bounty is a funding request posted on the marketplace. Each logical
// bounty (identified by StandardBountiesID) may have many historical
// revisions; exactly one carries CurrentBounty=true and is the canonical
// record, the rest preserve the status history.
type Bounty struct {
	ID                        int64     `json:"id"`
	StandardBountiesID        int64     `json:"standard_bounties_id"`
	Network                   string    `json:"network"`
	Web3Type                  string    `json:"web3_type"`
	OrgName                   string    `json:"org_name"`
	GithubRepoName            string    `json:"github_repo_name"`
	GithubIssueNumber         int64     `json:"github_issue_number"`
	IdxStatus                 string    `json:"idx_status"`
	ValueInUSDTThen           float64   `json:"value_in_usdt_then"`
	BountyOwnerGithubUsername string    `json:"bounty_owner_github_username"`
	CurrentBounty             bool      `json:"current_bounty"`
	CreatedOn                 time.Time `json:"created_on"`
}

// Fulfillment is a claimed completion of a bounty. Accepted marks whether
// the bounty owner approved the work.
type Fulfillment struct {
	ID                      int64  `json:"id"`
	BountyID                int64  `json:"bounty_id"`
	FulfillerGithubUsername string `json:"fulfiller_github_username"`
	Accepted                bool   `json:"accepted"`
}

// Tip is a direct peer-to-peer transfer. Username is the recipient,
// FromUsername the sender.
type Tip struct {
	ID             int64   `json:"id"`
	Network        string  `json:"network"`
	Username       string  `json:"username"`
	FromUsername   string  `json:"from_username"`
	ValueInUSDTNow float64 `json:"value_in_usdt_now"`
}

// Profile is a marketplace user. GithubAccessToken is empty unless the user
// linked the external integration; the network graph treats linked profiles
// as independent nodes.
type Profile struct {
	Handle            string `json:"handle"`
	GithubAccessToken string `json:"-"`
}

// Stat is one hourly sample of a named marketing/engagement metric.
// ValSinceHour is the delta accumulated since the previous sample.
type Stat struct {
	Key          string    `json:"key"`
	CreatedOn    time.Time `json:"created_on"`
	ValSinceHour float64   `json:"val_since_hour"`
}
